package appointmentRepo

import (
	"context"
	"time"

	"medlink/models"
)

// AppointmentRepository is the appointment ledger.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
	// ListUpcomingForPatient returns non-cancelled appointments whose slot
	// date falls within [fromDate, toDate] (YYYY-MM-DD, inclusive).
	ListUpcomingForPatient(ctx context.Context, patientID, fromDate, toDate string) ([]models.Appointment, error)

	// MarkCancelled flips cancel only while the appointment is neither
	// cancelled nor completed. It reports whether the flip happened.
	MarkCancelled(ctx context.Context, id string, by models.Role, at time.Time) (bool, error)
	// MarkCompleted flips isCompleted only while the appointment is neither
	// cancelled nor completed. It reports whether the flip happened.
	MarkCompleted(ctx context.Context, id string, at time.Time) (bool, error)
	MarkPaid(ctx context.Context, id, provider, reference string, at time.Time) error

	Count(ctx context.Context) (int64, error)
	// CountByMonthSince groups appointments created at or after since by
	// "YYYY-MM" of their creation time.
	CountByMonthSince(ctx context.Context, since time.Time) (map[string]int, error)
	Recent(ctx context.Context, limit int64) ([]models.Appointment, error)
}
