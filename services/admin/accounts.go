package admin

import (
	"context"
	"errors"
	"strings"

	"medlink/models"
	"medlink/services/auth"
	"medlink/utils"

	"go.uber.org/zap"
)

func (s *DefaultAdminService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	a, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Login failed, please try again", err)
	}
	if a == nil || !utils.CheckPassword(a.PasswordHash, req.Password) {
		return nil, auth.InvalidCredentials()
	}
	return auth.Issue(a.ID, a.Name, a.Email, models.RoleAdmin)
}

// CreateAdmin bootstraps an administrator account.
func (s *DefaultAdminService) CreateAdmin(ctx context.Context, name, email, password string) (*models.Admin, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, utils.NewError(utils.ErrValidation, "Name and email are required")
	}
	if err := utils.VerifyPasswordComplexity(password); err != nil {
		return nil, utils.NewError(utils.ErrValidation, err.Error())
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to create admin", err)
	}

	a := &models.Admin{ID: utils.NewID(), Name: name, Email: email, PasswordHash: hash}
	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.WrapError(utils.ErrConflict, "An admin with this email already exists", err)
		}
		return nil, utils.WrapError(utils.ErrInternal, "Failed to create admin", err)
	}
	utils.GetLogger().Info("Admin created", zap.String("adminID", a.ID))
	return a, nil
}
