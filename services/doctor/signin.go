package doctor

import (
	"context"
	"strings"

	"medlink/models"
	"medlink/services/auth"
	"medlink/utils"
)

func (s *DefaultDoctorService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	doc, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Login failed, please try again", err)
	}
	if doc == nil || !utils.CheckPassword(doc.PasswordHash, req.Password) {
		return nil, auth.InvalidCredentials()
	}
	return auth.Issue(doc.ID, doc.Name, doc.Email, models.RoleDoctor)
}
