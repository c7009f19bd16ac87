package patient

import (
	"context"
	"errors"
	"strings"

	"medlink/models"
	"medlink/services/auth"
	"medlink/utils"

	"go.uber.org/zap"
)

// Register creates a patient account with a password and logs it in.
func (s *DefaultPatientService) Register(ctx context.Context, req models.RegisterPatientRequest) (*models.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" {
		return nil, utils.NewError(utils.ErrValidation, "Missing details")
	}
	if err := utils.VerifyPasswordComplexity(req.Password); err != nil {
		return nil, utils.NewError(utils.ErrValidation, err.Error())
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing patient", zap.Error(err))
		return nil, utils.WrapError(utils.ErrInternal, "Registration failed, please try again", err)
	}
	if existing != nil {
		return nil, utils.NewError(utils.ErrConflict, "A user with this email already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Registration failed, please try again", err)
	}

	p := newPatient(name, email)
	p.PasswordHash = hash
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, createError(err)
	}
	utils.GetLogger().Info("Patient registered", zap.String("patientID", p.ID))
	return auth.Issue(p.ID, p.Name, p.Email, models.RolePatient)
}

func newPatient(name, email string) *models.Patient {
	return &models.Patient{
		ID:          utils.NewID(),
		Name:        name,
		Email:       email,
		Image:       models.DefaultPatientImage,
		Gender:      models.NotSelected,
		DateOfBirth: models.NotSelected,
	}
}

func createError(err error) error {
	if errors.Is(err, utils.ErrConflict) {
		return utils.WrapError(utils.ErrConflict, "A user with this email already exists", err)
	}
	utils.GetLogger().Error("failed to create patient", zap.Error(err))
	return utils.WrapError(utils.ErrInternal, "Registration failed, please try again", err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
