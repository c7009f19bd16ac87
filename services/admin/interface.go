package admin

import (
	"context"
	"time"

	adminRepo "medlink/database/repository/admin"
	appointmentRepo "medlink/database/repository/appointment"
	"medlink/models"
)

type AdminService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	CreateAdmin(ctx context.Context, name, email, password string) (*models.Admin, error)
	Dashboard(ctx context.Context) (*models.Dashboard, error)
}

// Counter is satisfied by every repository that can count its documents.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Repo         adminRepo.AdminRepository
	Appointments appointmentRepo.AppointmentRepository
	Doctors      Counter
	Patients     Counter
	Orders       Counter
	Now          func() time.Time
}
