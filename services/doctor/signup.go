package doctor

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

// AddDoctor registers a doctor on behalf of an admin. The profile image is
// uploaded before the record is written and removed again if the write fails.
func (s *DefaultDoctorService) AddDoctor(ctx context.Context, req models.AddDoctorRequest, image *storage.File) (*models.Doctor, error) {
	if image == nil {
		return nil, utils.NewError(utils.ErrValidation, "Doctor image is required")
	}
	if err := utils.VerifyPasswordComplexity(req.Password); err != nil {
		return nil, utils.NewError(utils.ErrValidation, err.Error())
	}
	var addr models.Address
	if err := json.Unmarshal([]byte(req.Address), &addr); err != nil {
		return nil, utils.NewError(utils.ErrValidation, "Address must be a JSON object with line1 and line2")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to add doctor", err)
	}
	if existing != nil {
		return nil, utils.NewError(utils.ErrConflict, "A doctor with this email already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to add doctor", err)
	}

	uploaded, err := s.Storage.Upload(ctx, image.Reader, storage.UploadOptions{
		Folder:       storage.FolderDoctors,
		FileName:     image.Name,
		ResourceType: "image",
	})
	if err != nil {
		utils.GetLogger().Error("AddDoctor: image upload failed", zap.Error(err))
		return nil, utils.WrapError(utils.ErrUpstream, "Image upload failed", err)
	}

	doc := &models.Doctor{
		ID:             utils.NewID(),
		Name:           strings.TrimSpace(req.Name),
		Email:          email,
		PasswordHash:   hash,
		Image:          uploaded.URL,
		ImagePublicID:  uploaded.PublicID,
		Specialization: req.Specialization,
		Degree:         req.Degree,
		Experience:     req.Experience,
		About:          req.About,
		Available:      true,
		Fees:           req.Fees,
		Address:        addr,
		SlotsBooked:    models.SlotsBooked{},
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		if delErr := s.Storage.Delete(ctx, uploaded.PublicID, "image"); delErr != nil {
			utils.GetLogger().Warn("AddDoctor: orphaned image not removed", zap.String("publicID", uploaded.PublicID), zap.Error(delErr))
		}
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.WrapError(utils.ErrConflict, "A doctor with this email already exists", err)
		}
		return nil, utils.WrapError(utils.ErrInternal, "Failed to add doctor", err)
	}

	utils.GetLogger().Info("Doctor added", zap.String("doctorID", doc.ID))
	return doc, nil
}
