package patient

import (
	"context"

	"medlink/models"
	"medlink/services/auth"
	"medlink/utils"

	"go.uber.org/zap"
)

func (s *DefaultPatientService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	p, err := s.Repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		utils.GetLogger().Error("Login: patient lookup failed", zap.Error(err))
		return nil, utils.WrapError(utils.ErrInternal, "Login failed, please try again", err)
	}
	// Accounts created through Google have no password hash and cannot log in here.
	if p == nil || !utils.CheckPassword(p.PasswordHash, req.Password) {
		return nil, auth.InvalidCredentials()
	}
	return auth.Issue(p.ID, p.Name, p.Email, models.RolePatient)
}
