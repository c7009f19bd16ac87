package doctorRepo

import (
	"context"

	"medlink/models"
)

// DoctorRepository defines data access for doctors and their slot registry.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	// GetByEmail returns nil, nil when no doctor has the email.
	GetByEmail(ctx context.Context, email string) (*models.Doctor, error)
	List(ctx context.Context) ([]models.Doctor, error)
	UpdateProfile(ctx context.Context, id string, req models.UpdateDoctorProfileRequest) error
	// ToggleAvailability flips the available flag and returns the new value.
	ToggleAvailability(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)

	// ReserveSlot adds slotTime to the doctor's list for date in one
	// conditional update. It fails with utils.ErrNotFound,
	// utils.ErrDoctorUnavailable or utils.ErrSlotConflict and then writes nothing.
	ReserveSlot(ctx context.Context, doctorID, date, slotTime string) error
	// ReleaseSlot removes slotTime from the list for date. Releasing a time
	// that is not booked succeeds.
	ReleaseSlot(ctx context.Context, doctorID, date, slotTime string) error
}
