package auth

import (
	"context"
	"errors"
	"time"

	adminRepo "medlink/database/repository/admin"
	doctorRepo "medlink/database/repository/doctor"
	patientRepo "medlink/database/repository/patient"
	"medlink/models"
	"medlink/utils"

	"go.uber.org/zap"
)

// Issue signs a token for an account and wraps it in the login response.
func Issue(id, name, email string, role models.Role) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(id, email, role, utils.TokenTTL())
	if err != nil {
		utils.GetLogger().Error("Issue: token generation failed", zap.String("role", string(role)), zap.Error(err))
		return nil, utils.WrapError(utils.ErrInternal, "Login failed, please try again", err)
	}
	return &models.AuthResponse{ID: id, Token: token, Role: role, Name: name, Email: email}, nil
}

// InvalidCredentials is the single error every login failure reports.
func InvalidCredentials() error {
	return utils.NewError(utils.ErrUnauthorized, "Invalid credentials")
}

// AccountResolver confirms that a token subject still has an account.
type AccountResolver struct {
	patients patientRepo.PatientRepository
	doctors  doctorRepo.DoctorRepository
	admins   adminRepo.AdminRepository
}

func NewAccountResolver(p patientRepo.PatientRepository, d doctorRepo.DoctorRepository, a adminRepo.AdminRepository) *AccountResolver {
	return &AccountResolver{patients: p, doctors: d, admins: a}
}

// Exists reports whether an account of the given role and id exists.
func (r *AccountResolver) Exists(ctx context.Context, role models.Role, id string) (bool, error) {
	var err error
	switch role {
	case models.RolePatient:
		_, err = r.patients.GetByID(ctx, id)
	case models.RoleDoctor:
		_, err = r.doctors.GetByID(ctx, id)
	case models.RoleAdmin:
		_, err = r.admins.GetByID(ctx, id)
	default:
		return false, nil
	}
	if errors.Is(err, utils.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// TokenRevoker blocks tokens on logout.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// Logout revokes token for the rest of its lifetime.
func Logout(ctx context.Context, revoker TokenRevoker, token string) error {
	if err := revoker.Revoke(ctx, token, utils.TokenTTL()); err != nil {
		return utils.WrapError(utils.ErrUpstream, "Logout failed, please try again", err)
	}
	return nil
}
