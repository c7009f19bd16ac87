package doctor

import (
	"context"
	"errors"

	"medlink/models"
	"medlink/utils"

	"go.uber.org/zap"
)

func (s *DefaultDoctorService) ListPublic(ctx context.Context) ([]models.PublicDoctor, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to list doctors", err)
	}
	out := make([]models.PublicDoctor, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].Public())
	}
	return out, nil
}

func (s *DefaultDoctorService) ListAll(ctx context.Context) ([]models.Doctor, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to list doctors", err)
	}
	return docs, nil
}

func (s *DefaultDoctorService) GetProfile(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doc, err := s.Repo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, repoError(err)
	}
	return doc, nil
}

func (s *DefaultDoctorService) UpdateProfile(ctx context.Context, doctorID string, req models.UpdateDoctorProfileRequest) error {
	if req.Fees == nil && req.Address == nil && req.Available == nil && req.About == nil {
		return utils.NewError(utils.ErrValidation, "Nothing to update")
	}
	if req.Fees != nil && *req.Fees <= 0 {
		return utils.NewError(utils.ErrValidation, "Fees must be positive")
	}
	if err := s.Repo.UpdateProfile(ctx, doctorID, req); err != nil {
		return repoError(err)
	}
	return nil
}

func (s *DefaultDoctorService) ChangeAvailability(ctx context.Context, doctorID string) (bool, error) {
	available, err := s.Repo.ToggleAvailability(ctx, doctorID)
	if err != nil {
		return false, repoError(err)
	}
	utils.GetLogger().Info("Doctor availability changed", zap.String("doctorID", doctorID), zap.Bool("available", available))
	return available, nil
}

func repoError(err error) error {
	if errors.Is(err, utils.ErrNotFound) {
		return utils.WrapError(utils.ErrNotFound, "Doctor not found", err)
	}
	return utils.WrapError(utils.ErrInternal, "Something went wrong, please try again", err)
}
