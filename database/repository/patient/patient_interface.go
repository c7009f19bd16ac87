package patientRepo

import (
	"context"

	"medlink/models"
)

// PatientRepository defines methods for patient data access.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	// GetByEmail returns nil, nil when no patient has the email.
	GetByEmail(ctx context.Context, email string) (*models.Patient, error)
	UpdateProfile(ctx context.Context, id string, upd models.PatientProfileUpdate) (*models.Patient, error)
	LinkGoogleAccount(ctx context.Context, id, googleID string) error
	Count(ctx context.Context) (int64, error)
}
