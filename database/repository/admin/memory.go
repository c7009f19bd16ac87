package adminRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medlink/models"
	"medlink/utils"
)

type MemoryAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*models.Admin
}

func NewMemoryAdminRepo() *MemoryAdminRepo {
	return &MemoryAdminRepo{admins: map[string]*models.Admin{}}
}

func (r *MemoryAdminRepo) Create(_ context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == admin.Email {
			return fmt.Errorf("admin already exists: %w", utils.ErrConflict)
		}
	}
	admin.CreatedAt = time.Now()
	cp := *admin
	r.admins[admin.ID] = &cp
	return nil
}

func (r *MemoryAdminRepo) GetByID(_ context.Context, id string) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, fmt.Errorf("admin: %w", utils.ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (r *MemoryAdminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}
