package patient

import (
	"context"
	"errors"
	"strings"

	"medlink/models"
	"medlink/services/storage"
	"medlink/utils"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

func (s *DefaultPatientService) GetProfile(ctx context.Context, patientID string) (*models.Patient, error) {
	p, err := s.Repo.GetByID(ctx, patientID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	return p, nil
}

// UpdateProfile replaces the editable profile fields. When image is given it
// is uploaded first and the previous upload is removed afterwards.
func (s *DefaultPatientService) UpdateProfile(ctx context.Context, patientID string, req models.UpdatePatientProfileRequest, image *storage.File) (*models.Patient, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.Phone) == "" || strings.TrimSpace(req.DateOfBirth) == "" {
		return nil, utils.NewError(utils.ErrValidation, "Data Missing")
	}

	upd := models.PatientProfileUpdate{
		Name:        name,
		Phone:       strings.TrimSpace(req.Phone),
		DateOfBirth: strings.TrimSpace(req.DateOfBirth),
		Gender:      req.Gender,
		FCMToken:    req.FCMToken,
	}
	if req.Address != "" {
		var addr models.Address
		if err := json.Unmarshal([]byte(req.Address), &addr); err != nil {
			return nil, utils.NewError(utils.ErrValidation, "Address must be a JSON object with line1 and line2")
		}
		upd.Address = &addr
	}

	current, err := s.Repo.GetByID(ctx, patientID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}

	if image != nil {
		if s.Storage == nil {
			return nil, utils.NewError(utils.ErrValidation, "Image uploads are not enabled")
		}
		uploaded, err := s.Storage.Upload(ctx, image.Reader, storage.UploadOptions{
			Folder:       storage.FolderProfiles,
			FileName:     image.Name,
			ResourceType: "image",
		})
		if err != nil {
			utils.GetLogger().Error("UpdateProfile: image upload failed", zap.String("patientID", patientID), zap.Error(err))
			return nil, utils.WrapError(utils.ErrUpstream, "Image upload failed", err)
		}
		upd.Image = uploaded.URL
		upd.ImagePublicID = uploaded.PublicID
	}

	updated, err := s.Repo.UpdateProfile(ctx, patientID, upd)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}

	if upd.ImagePublicID != "" && current.ImagePublicID != "" && current.ImagePublicID != upd.ImagePublicID {
		if err := s.Storage.Delete(ctx, current.ImagePublicID, "image"); err != nil {
			utils.GetLogger().Warn("UpdateProfile: old image not removed", zap.String("publicID", current.ImagePublicID), zap.Error(err))
		}
	}
	return updated, nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, utils.ErrNotFound) {
		return utils.WrapError(utils.ErrNotFound, message, err)
	}
	return utils.WrapError(utils.ErrInternal, "Something went wrong, please try again", err)
}
