package booking

import (
	"context"
	"time"

	appointmentRepo "medlink/database/repository/appointment"
	doctorRepo "medlink/database/repository/doctor"
	patientRepo "medlink/database/repository/patient"
	"medlink/models"
	"medlink/services/payment"
	"medlink/services/tasks"
)

// BookingService owns the appointment lifecycle and the doctor slot registry.
type BookingService interface {
	Book(ctx context.Context, patientID string, req models.BookAppointmentRequest) (*models.Appointment, error)
	CancelByPatient(ctx context.Context, patientID, appointmentID string) error
	CancelByAdmin(ctx context.Context, appointmentID string) error
	Complete(ctx context.Context, doctorID, appointmentID string) error
	MarkPaid(ctx context.Context, patientID, appointmentID string, conf models.PaymentConfirmation) error

	ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)

	// SendReminder queues an immediate reminder for one of the doctor's appointments.
	SendReminder(ctx context.Context, doctorID, appointmentID string) error

	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	GetPatient(ctx context.Context, id string) (*models.Patient, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
	Patients     patientRepo.PatientRepository
	Payments     *payment.Registry
	// Reminders may be nil, in which case no reminders are queued.
	Reminders tasks.ReminderScheduler
	// ReminderLead is how long before the slot the reminder fires.
	ReminderLead time.Duration
	// Location resolves slot dates and times to instants.
	Location *time.Location
	Now      func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}
