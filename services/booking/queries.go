package booking

import (
	"context"

	"medlink/models"
)

func (s *DefaultBookingService) load(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err, "Appointment not found")
	}
	return appt, nil
}

func (s *DefaultBookingService) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return s.load(ctx, id)
}

func (s *DefaultBookingService) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	p, err := s.Patients.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err, "User not found")
	}
	return p, nil
}

func (s *DefaultBookingService) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	appts, err := s.Appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, classify(err, "Appointments not found")
	}
	return appts, nil
}

func (s *DefaultBookingService) ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	appts, err := s.Appointments.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, classify(err, "Appointments not found")
	}
	return appts, nil
}

func (s *DefaultBookingService) ListAll(ctx context.Context) ([]models.Appointment, error) {
	appts, err := s.Appointments.ListAll(ctx)
	if err != nil {
		return nil, classify(err, "Appointments not found")
	}
	return appts, nil
}
