package doctorRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"medlink/models"
	"medlink/utils"
)

// MemoryDoctorRepo keeps doctors in process. Slot operations hold the lock
// for the whole check-and-write so they are atomic like the Mongo version.
type MemoryDoctorRepo struct {
	mu      sync.Mutex
	doctors map[string]*models.Doctor
}

func NewMemoryDoctorRepo() *MemoryDoctorRepo {
	return &MemoryDoctorRepo{doctors: map[string]*models.Doctor{}}
}

func copyDoctor(d *models.Doctor) *models.Doctor {
	cp := *d
	cp.SlotsBooked = d.SlotsBooked.Clone()
	return &cp
}

func (r *MemoryDoctorRepo) Create(_ context.Context, doctor *models.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.doctors {
		if d.Email == doctor.Email || d.ID == doctor.ID {
			return fmt.Errorf("doctor already exists: %w", utils.ErrConflict)
		}
	}
	now := time.Now()
	doctor.CreatedAt, doctor.UpdatedAt = now, now
	if doctor.SlotsBooked == nil {
		doctor.SlotsBooked = models.SlotsBooked{}
	}
	r.doctors[doctor.ID] = copyDoctor(doctor)
	return nil
}

func (r *MemoryDoctorRepo) GetByID(_ context.Context, id string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return nil, fmt.Errorf("doctor: %w", utils.ErrNotFound)
	}
	return copyDoctor(d), nil
}

func (r *MemoryDoctorRepo) GetByEmail(_ context.Context, email string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.doctors {
		if d.Email == email {
			return copyDoctor(d), nil
		}
	}
	return nil, nil
}

func (r *MemoryDoctorRepo) List(_ context.Context) ([]models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		out = append(out, *copyDoctor(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryDoctorRepo) UpdateProfile(_ context.Context, id string, req models.UpdateDoctorProfileRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return fmt.Errorf("doctor %s: %w", id, utils.ErrNotFound)
	}
	if req.Fees != nil {
		d.Fees = *req.Fees
	}
	if req.Address != nil {
		d.Address = *req.Address
	}
	if req.Available != nil {
		d.Available = *req.Available
	}
	if req.About != nil {
		d.About = *req.About
	}
	d.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryDoctorRepo) ToggleAvailability(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return false, fmt.Errorf("doctor: %w", utils.ErrNotFound)
	}
	d.Available = !d.Available
	return d.Available, nil
}

func (r *MemoryDoctorRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.doctors)), nil
}

func (r *MemoryDoctorRepo) ReserveSlot(_ context.Context, doctorID, date, slotTime string) error {
	if _, err := slotField(date); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[doctorID]
	if !ok {
		return fmt.Errorf("doctor %s: %w", doctorID, utils.ErrNotFound)
	}
	if !d.Available {
		return fmt.Errorf("doctor %s: %w", doctorID, utils.ErrDoctorUnavailable)
	}
	if !d.SlotsBooked.Reserve(date, slotTime) {
		return fmt.Errorf("%s %s: %w", date, slotTime, utils.ErrSlotConflict)
	}
	return nil
}

func (r *MemoryDoctorRepo) ReleaseSlot(_ context.Context, doctorID, date, slotTime string) error {
	if _, err := slotField(date); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[doctorID]
	if !ok {
		return fmt.Errorf("doctor %s: %w", doctorID, utils.ErrNotFound)
	}
	d.SlotsBooked.Release(date, slotTime)
	return nil
}
