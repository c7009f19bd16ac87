package doctor

import (
	"context"

	doctorRepo "medlink/database/repository/doctor"
	"medlink/models"
	"medlink/services/storage"
)

type DoctorService interface {
	AddDoctor(ctx context.Context, req models.AddDoctorRequest, image *storage.File) (*models.Doctor, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)

	ListPublic(ctx context.Context) ([]models.PublicDoctor, error)
	ListAll(ctx context.Context) ([]models.Doctor, error)
	GetProfile(ctx context.Context, doctorID string) (*models.Doctor, error)
	UpdateProfile(ctx context.Context, doctorID string, req models.UpdateDoctorProfileRequest) error
	// ChangeAvailability flips the doctor's available flag and returns the new value.
	ChangeAvailability(ctx context.Context, doctorID string) (bool, error)
}

type DefaultDoctorService struct {
	Repo    doctorRepo.DoctorRepository
	Storage storage.StorageService
}
