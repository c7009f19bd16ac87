package records

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	recordsRepo "medlink/database/repository/records"
	"medlink/models"
	"medlink/services/storage"
	"medlink/utils"

	"go.uber.org/zap"
)

const MaxRecordBytes = 10 << 20

type RecordService interface {
	Upload(ctx context.Context, patientID, name string, file *storage.File) (*models.MedicalRecord, error)
	List(ctx context.Context, patientID string) ([]models.MedicalRecord, error)
	Rename(ctx context.Context, patientID, recordID, name string) (*models.MedicalRecord, error)
	Delete(ctx context.Context, patientID, recordID string) error
}

type DefaultRecordService struct {
	Repo    recordsRepo.MedicalRecordRepository
	Storage storage.StorageService
}

func (s *DefaultRecordService) Upload(ctx context.Context, patientID, name string, file *storage.File) (*models.MedicalRecord, error) {
	if file == nil {
		return nil, utils.NewError(utils.ErrValidation, "No file uploaded")
	}
	if file.Size > MaxRecordBytes {
		return nil, utils.NewError(utils.ErrValidation, "File is too large")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSuffix(file.Name, filepath.Ext(file.Name))
	}

	resourceType := storage.ResourceTypeFor(file.Name)
	uploaded, err := s.Storage.Upload(ctx, file.Reader, storage.UploadOptions{
		Folder:       models.MedicalRecordsFolder,
		FileName:     file.Name,
		ResourceType: resourceType,
	})
	if err != nil {
		utils.GetLogger().Error("Upload: medical record upload failed", zap.String("patientID", patientID), zap.Error(err))
		return nil, utils.WrapError(utils.ErrUpstream, "File upload failed", err)
	}

	record := &models.MedicalRecord{
		ID:           utils.NewID(),
		PatientID:    patientID,
		Name:         name,
		FileURL:      uploaded.URL,
		PublicID:     uploaded.PublicID,
		ResourceType: uploaded.ResourceType,
		Format:       uploaded.Format,
		Size:         uploaded.Bytes,
	}
	if record.ResourceType == "" {
		record.ResourceType = resourceType
	}
	if err := s.Repo.Create(ctx, record); err != nil {
		if delErr := s.Storage.Delete(ctx, uploaded.PublicID, record.ResourceType); delErr != nil {
			utils.GetLogger().Warn("Upload: orphaned file not removed", zap.String("publicID", uploaded.PublicID), zap.Error(delErr))
		}
		return nil, utils.WrapError(utils.ErrInternal, "Failed to save medical record", err)
	}
	return record, nil
}

func (s *DefaultRecordService) List(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	out, err := s.Repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to load medical records", err)
	}
	return out, nil
}

func (s *DefaultRecordService) owned(ctx context.Context, patientID, recordID string) (*models.MedicalRecord, error) {
	record, err := s.Repo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.WrapError(utils.ErrNotFound, "Record not found", err)
		}
		return nil, utils.WrapError(utils.ErrInternal, "Failed to load medical record", err)
	}
	if record.PatientID != patientID {
		return nil, utils.NewError(utils.ErrForbidden, "Unauthorized action")
	}
	return record, nil
}

func (s *DefaultRecordService) Rename(ctx context.Context, patientID, recordID, name string) (*models.MedicalRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.NewError(utils.ErrValidation, "Name is required")
	}
	if _, err := s.owned(ctx, patientID, recordID); err != nil {
		return nil, err
	}
	record, err := s.Repo.Rename(ctx, recordID, name)
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to rename medical record", err)
	}
	return record, nil
}

// Delete removes the stored file first so a failed CDN call leaves the
// record in place to retry.
func (s *DefaultRecordService) Delete(ctx context.Context, patientID, recordID string) error {
	record, err := s.owned(ctx, patientID, recordID)
	if err != nil {
		return err
	}
	if err := s.Storage.Delete(ctx, record.PublicID, record.ResourceType); err != nil {
		return utils.WrapError(utils.ErrUpstream, "Failed to delete file", err)
	}
	if err := s.Repo.DeleteByID(ctx, recordID); err != nil {
		return utils.WrapError(utils.ErrInternal, "Failed to delete medical record", err)
	}
	return nil
}
