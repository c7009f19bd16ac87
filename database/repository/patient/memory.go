package patientRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medlink/models"
	"medlink/utils"
)

// MemoryPatientRepo keeps patients in process.
type MemoryPatientRepo struct {
	mu       sync.Mutex
	patients map[string]*models.Patient
}

func NewMemoryPatientRepo() *MemoryPatientRepo {
	return &MemoryPatientRepo{patients: map[string]*models.Patient{}}
}

func (r *MemoryPatientRepo) Create(_ context.Context, patient *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.patients {
		if p.Email == patient.Email || p.ID == patient.ID {
			return fmt.Errorf("patient already exists: %w", utils.ErrConflict)
		}
	}
	now := time.Now()
	patient.CreatedAt, patient.UpdatedAt = now, now
	cp := *patient
	r.patients[patient.ID] = &cp
	return nil
}

func (r *MemoryPatientRepo) GetByID(_ context.Context, id string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient: %w", utils.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryPatientRepo) GetByEmail(_ context.Context, email string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.patients {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryPatientRepo) UpdateProfile(_ context.Context, id string, upd models.PatientProfileUpdate) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient: %w", utils.ErrNotFound)
	}
	p.Name, p.Phone, p.DateOfBirth = upd.Name, upd.Phone, upd.DateOfBirth
	if upd.Gender != "" {
		p.Gender = upd.Gender
	}
	if upd.Address != nil {
		p.Address = *upd.Address
	}
	if upd.Image != "" {
		p.Image, p.ImagePublicID = upd.Image, upd.ImagePublicID
	}
	if upd.FCMToken != "" {
		p.FCMToken = upd.FCMToken
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (r *MemoryPatientRepo) LinkGoogleAccount(_ context.Context, id, googleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[id]
	if !ok {
		return fmt.Errorf("patient %s: %w", id, utils.ErrNotFound)
	}
	p.GoogleID = googleID
	return nil
}

func (r *MemoryPatientRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.patients)), nil
}
