package recordsRepo

import (
	"context"

	"medlink/models"
)

type MedicalRecordRepository interface {
	Create(ctx context.Context, record *models.MedicalRecord) error
	GetByID(ctx context.Context, id string) (*models.MedicalRecord, error)
	// ListByPatient returns a patient's records, newest first.
	ListByPatient(ctx context.Context, patientID string) ([]models.MedicalRecord, error)
	Rename(ctx context.Context, id, name string) (*models.MedicalRecord, error)
	DeleteByID(ctx context.Context, id string) error
}
