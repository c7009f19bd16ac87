package patient

import (
	"context"

	patientRepo "medlink/database/repository/patient"
	"medlink/models"
	"medlink/services/storage"
)

type PatientService interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterPatientRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GoogleLogin(ctx context.Context, credential string) (*models.AuthResponse, error)

	// Profile
	GetProfile(ctx context.Context, patientID string) (*models.Patient, error)
	UpdateProfile(ctx context.Context, patientID string, req models.UpdatePatientProfileRequest, image *storage.File) (*models.Patient, error)
}

// DefaultPatientService is the production implementation.
type DefaultPatientService struct {
	Repo    patientRepo.PatientRepository
	Storage storage.StorageService
	Google  GoogleVerifier
}
