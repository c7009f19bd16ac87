package health

import (
	"context"
	"time"

	appointmentRepo "medlink/database/repository/appointment"
	healthRepo "medlink/database/repository/health"
	"medlink/models"
	"medlink/utils"
)

// AnalyticsWindow bounds both the vitals history and the upcoming appointments.
const AnalyticsWindow = 30 * 24 * time.Hour

type HealthService interface {
	RecordVitals(ctx context.Context, patientID string, req models.RecordVitalsRequest) (*models.VitalSigns, error)
	AddMedication(ctx context.Context, patientID string, req models.AddMedicationRequest) (*models.Medication, error)
	Analytics(ctx context.Context, patientID string) (*models.HealthAnalytics, error)
}

type DefaultHealthService struct {
	Repo         healthRepo.HealthRepository
	Appointments appointmentRepo.AppointmentRepository
	Now          func() time.Time
}

func (s *DefaultHealthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultHealthService) RecordVitals(ctx context.Context, patientID string, req models.RecordVitalsRequest) (*models.VitalSigns, error) {
	if req.HeartRate <= 0 || req.BloodSugar <= 0 || req.BloodPressure.Systolic <= 0 || req.BloodPressure.Diastolic <= 0 {
		return nil, utils.NewError(utils.ErrValidation, "All vital signs are required")
	}
	v := &models.VitalSigns{
		ID:            utils.NewID(),
		PatientID:     patientID,
		Date:          s.now(),
		BloodPressure: req.BloodPressure,
		HeartRate:     req.HeartRate,
		BloodSugar:    req.BloodSugar,
		Notes:         req.Notes,
	}
	if req.Date != nil {
		v.Date = *req.Date
	}
	if err := s.Repo.AddVitals(ctx, v); err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to record vital signs", err)
	}
	return v, nil
}

func (s *DefaultHealthService) AddMedication(ctx context.Context, patientID string, req models.AddMedicationRequest) (*models.Medication, error) {
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, utils.NewError(utils.ErrValidation, "End date is before start date")
	}
	m := &models.Medication{
		ID:         utils.NewID(),
		PatientID:  patientID,
		Name:       req.Name,
		Dosage:     req.Dosage,
		Frequency:  req.Frequency,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalCount: req.TotalCount,
		Notes:      req.Notes,
	}
	if err := s.Repo.AddMedication(ctx, m); err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to add medication", err)
	}
	return m, nil
}

func (s *DefaultHealthService) Analytics(ctx context.Context, patientID string) (*models.HealthAnalytics, error) {
	now := s.now()
	vitals, err := s.Repo.VitalsSince(ctx, patientID, now.Add(-AnalyticsWindow))
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to load vital signs", err)
	}
	meds, err := s.Repo.Medications(ctx, patientID)
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to load medications", err)
	}
	appts, err := s.Appointments.ListUpcomingForPatient(ctx, patientID,
		now.Format(models.SlotDateLayout), now.Add(AnalyticsWindow).Format(models.SlotDateLayout))
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to load appointments", err)
	}

	out := &models.HealthAnalytics{
		VitalSigns:           history(vitals),
		Medications:          meds,
		UpcomingAppointments: make([]models.UpcomingAppointment, 0, len(appts)),
	}
	if out.Medications == nil {
		out.Medications = []models.Medication{}
	}
	for i := range appts {
		a := &appts[i]
		out.UpcomingAppointments = append(out.UpcomingAppointments, models.UpcomingAppointment{
			ID:         a.ID,
			DoctorName: a.DoctorData.Name,
			Date:       a.SlotDate,
			Time:       a.SlotTime,
			Status:     a.Status(),
			Specialty:  a.DoctorData.Specialization,
		})
	}
	return out, nil
}

// history splits readings into the per-series points the client charts.
func history(vitals []models.VitalSigns) models.VitalsHistory {
	h := models.VitalsHistory{
		BloodPressure: make([]models.BloodPressurePoint, 0, len(vitals)),
		HeartRate:     make([]models.HeartRatePoint, 0, len(vitals)),
		BloodSugar:    make([]models.BloodSugarPoint, 0, len(vitals)),
	}
	for _, v := range vitals {
		day := v.Date.Format(models.SlotDateLayout)
		h.BloodPressure = append(h.BloodPressure, models.BloodPressurePoint{Date: day, Systolic: v.BloodPressure.Systolic, Diastolic: v.BloodPressure.Diastolic})
		h.HeartRate = append(h.HeartRate, models.HeartRatePoint{Date: day, Rate: v.HeartRate})
		h.BloodSugar = append(h.BloodSugar, models.BloodSugarPoint{Date: day, Level: v.BloodSugar})
	}
	return h
}
