package health

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	appointmentRepo "medlink/database/repository/appointment"
	"medlink/models"
	"medlink/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memHealth struct {
	vitals []models.VitalSigns
	meds   []models.Medication
}

func (m *memHealth) AddVitals(_ context.Context, v *models.VitalSigns) error {
	m.vitals = append(m.vitals, *v)
	return nil
}

func (m *memHealth) VitalsSince(_ context.Context, patientID string, since time.Time) ([]models.VitalSigns, error) {
	var out []models.VitalSigns
	for _, v := range m.vitals {
		if v.PatientID == patientID && !v.Date.Before(since) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *memHealth) AddMedication(_ context.Context, med *models.Medication) error {
	m.meds = append(m.meds, *med)
	return nil
}

func (m *memHealth) Medications(_ context.Context, patientID string) ([]models.Medication, error) {
	var out []models.Medication
	for _, med := range m.meds {
		if med.PatientID == patientID {
			out = append(out, med)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

var now = time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)

func vitalsAt(d time.Time, hr int) models.RecordVitalsRequest {
	return models.RecordVitalsRequest{
		BloodPressure: models.BloodPressure{Systolic: 120, Diastolic: 80},
		HeartRate:     hr,
		BloodSugar:    5.4,
		Date:          &d,
	}
}

func TestAnalytics(t *testing.T) {
	ctx := context.Background()
	appts := appointmentRepo.NewMemoryAppointmentRepo()
	svc := &DefaultHealthService{Repo: &memHealth{}, Appointments: appts, Now: func() time.Time { return now }}

	_, err := svc.RecordVitals(ctx, "P", vitalsAt(now.AddDate(0, 0, -40), 90))
	require.NoError(t, err)
	_, err = svc.RecordVitals(ctx, "P", vitalsAt(now.AddDate(0, 0, -1), 72))
	require.NoError(t, err)
	_, err = svc.RecordVitals(ctx, "P", vitalsAt(now.AddDate(0, 0, -10), 70))
	require.NoError(t, err)

	_, err = svc.AddMedication(ctx, "P", models.AddMedicationRequest{Name: "A", Dosage: "1", Frequency: "daily", StartDate: now.AddDate(0, -1, 0), TotalCount: 30})
	require.NoError(t, err)
	_, err = svc.AddMedication(ctx, "P", models.AddMedicationRequest{Name: "B", Dosage: "1", Frequency: "daily", StartDate: now, TotalCount: 10})
	require.NoError(t, err)

	for _, a := range []models.Appointment{
		{ID: "soon", PatientID: "P", SlotDate: "2024-06-20", SlotTime: "10:00", DoctorData: models.DoctorSnapshot{Name: "Who", Specialization: "GP"}},
		{ID: "later", PatientID: "P", SlotDate: "2024-08-01", SlotTime: "10:00"},
		{ID: "past", PatientID: "P", SlotDate: "2024-06-01", SlotTime: "10:00"},
		{ID: "cancelled", PatientID: "P", SlotDate: "2024-06-21", SlotTime: "10:00", Cancelled: true},
	} {
		a := a
		require.NoError(t, appts.Create(ctx, &a))
	}

	out, err := svc.Analytics(ctx, "P")
	require.NoError(t, err)

	require.Len(t, out.VitalSigns.HeartRate, 2)
	assert.Equal(t, models.HeartRatePoint{Date: "2024-06-05", Rate: 70}, out.VitalSigns.HeartRate[0])
	assert.Equal(t, models.HeartRatePoint{Date: "2024-06-14", Rate: 72}, out.VitalSigns.HeartRate[1])
	assert.Len(t, out.VitalSigns.BloodPressure, 2)

	require.Len(t, out.Medications, 2)
	assert.Equal(t, "B", out.Medications[0].Name)

	require.Len(t, out.UpcomingAppointments, 1)
	assert.Equal(t, models.UpcomingAppointment{
		ID: "soon", DoctorName: "Who", Date: "2024-06-20", Time: "10:00", Status: models.StatusUpcoming, Specialty: "GP",
	}, out.UpcomingAppointments[0])
}

func TestAnalyticsEmpty(t *testing.T) {
	svc := &DefaultHealthService{Repo: &memHealth{}, Appointments: appointmentRepo.NewMemoryAppointmentRepo(), Now: func() time.Time { return now }}
	out, err := svc.Analytics(context.Background(), "P")
	require.NoError(t, err)
	assert.NotNil(t, out.Medications)
	assert.NotNil(t, out.VitalSigns.HeartRate)
	assert.Empty(t, out.UpcomingAppointments)
}

func TestValidation(t *testing.T) {
	svc := &DefaultHealthService{Repo: &memHealth{}}
	_, err := svc.RecordVitals(context.Background(), "P", models.RecordVitalsRequest{HeartRate: 70})
	assert.True(t, errors.Is(err, utils.ErrValidation))

	end := now.AddDate(0, 0, -1)
	_, err = svc.AddMedication(context.Background(), "P", models.AddMedicationRequest{Name: "A", StartDate: now, EndDate: &end, TotalCount: 1})
	assert.True(t, errors.Is(err, utils.ErrValidation))
}
