package appointmentRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"medlink/models"
	"medlink/utils"
)

// MemoryAppointmentRepo keeps the ledger in process with the same
// conditional-transition rules as the Mongo version.
type MemoryAppointmentRepo struct {
	mu    sync.Mutex
	appts map[string]*models.Appointment
	// FailCreate makes the next Create fail once.
	FailCreate error
}

func NewMemoryAppointmentRepo() *MemoryAppointmentRepo {
	return &MemoryAppointmentRepo{appts: map[string]*models.Appointment{}}
}

func (r *MemoryAppointmentRepo) Create(_ context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.FailCreate; err != nil {
		r.FailCreate = nil
		return err
	}
	if _, ok := r.appts[appt.ID]; ok {
		return fmt.Errorf("appointment already exists: %w", utils.ErrConflict)
	}
	cp := *appt
	r.appts[appt.ID] = &cp
	return nil
}

func (r *MemoryAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok {
		return nil, fmt.Errorf("appointment: %w", utils.ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (r *MemoryAppointmentRepo) filter(keep func(*models.Appointment) bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range r.appts {
		if keep(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (r *MemoryAppointmentRepo) ListByPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	return r.filter(func(a *models.Appointment) bool { return a.PatientID == patientID }), nil
}

func (r *MemoryAppointmentRepo) ListByDoctor(_ context.Context, doctorID string) ([]models.Appointment, error) {
	return r.filter(func(a *models.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (r *MemoryAppointmentRepo) ListAll(_ context.Context) ([]models.Appointment, error) {
	return r.filter(func(*models.Appointment) bool { return true }), nil
}

func (r *MemoryAppointmentRepo) ListUpcomingForPatient(_ context.Context, patientID, fromDate, toDate string) ([]models.Appointment, error) {
	out := r.filter(func(a *models.Appointment) bool {
		return a.PatientID == patientID && !a.Cancelled && a.SlotDate >= fromDate && a.SlotDate <= toDate
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].SlotDate != out[j].SlotDate {
			return out[i].SlotDate < out[j].SlotDate
		}
		return out[i].SlotTime < out[j].SlotTime
	})
	return out, nil
}

func (r *MemoryAppointmentRepo) transition(id string, apply func(*models.Appointment)) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok {
		return false, fmt.Errorf("appointment %s: %w", id, utils.ErrNotFound)
	}
	if a.Cancelled || a.IsCompleted {
		return false, nil
	}
	apply(a)
	return true, nil
}

func (r *MemoryAppointmentRepo) MarkCancelled(_ context.Context, id string, by models.Role, at time.Time) (bool, error) {
	return r.transition(id, func(a *models.Appointment) {
		a.Cancelled, a.CancelledBy, a.CancelledAt = true, by, &at
	})
}

func (r *MemoryAppointmentRepo) MarkCompleted(_ context.Context, id string, at time.Time) (bool, error) {
	return r.transition(id, func(a *models.Appointment) {
		a.IsCompleted, a.CompletedAt = true, &at
	})
}

func (r *MemoryAppointmentRepo) MarkPaid(_ context.Context, id, provider, reference string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok {
		return fmt.Errorf("appointment %s: %w", id, utils.ErrNotFound)
	}
	for otherID, other := range r.appts {
		if otherID != id && other.PaymentProvider == provider && other.PaymentRef == reference {
			return fmt.Errorf("payment %s/%s already applied: %w", provider, reference, utils.ErrConflict)
		}
	}
	a.Payment, a.PaymentProvider, a.PaymentRef, a.PaidAt = true, provider, reference, &at
	return nil
}

func (r *MemoryAppointmentRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.appts)), nil
}

func (r *MemoryAppointmentRepo) CountByMonthSince(_ context.Context, since time.Time) (map[string]int, error) {
	out := map[string]int{}
	for _, a := range r.filter(func(a *models.Appointment) bool { return !a.Date.Before(since) }) {
		out[a.Date.UTC().Format("2006-01")]++
	}
	return out, nil
}

func (r *MemoryAppointmentRepo) Recent(_ context.Context, limit int64) ([]models.Appointment, error) {
	all := r.filter(func(*models.Appointment) bool { return true })
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}
