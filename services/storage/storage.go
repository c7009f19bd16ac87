package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"medlink/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage builds a Cloudinary-backed StorageService.
func NewCloudinaryStorage(cloudName, apiKey, apiSecret string) (StorageService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	utils.GetLogger().Info("Cloudinary storage initialized", zap.String("cloud", cloudName))
	return &CloudinaryStorage{cld: cld}, nil
}

func (s *CloudinaryStorage) Upload(ctx context.Context, file io.Reader, opts UploadOptions) (*UploadedFile, error) {
	resourceType := opts.ResourceType
	if resourceType == "" {
		resourceType = ResourceTypeFor(opts.FileName)
	}

	params := uploader.UploadParams{
		Folder:       opts.Folder,
		ResourceType: resourceType,
	}
	// Raw uploads keep their extension in the public id, otherwise the
	// delivered file has none.
	if resourceType == "raw" && opts.FileName != "" {
		base := strings.TrimSuffix(filepath.Base(opts.FileName), filepath.Ext(opts.FileName))
		params.PublicID = fmt.Sprintf("%s-%s%s", base, utils.ShortID(), strings.ToLower(filepath.Ext(opts.FileName)))
	}

	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryStorage: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("CloudinaryStorage: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("CloudinaryStorage: no public ID returned")
	}

	return &UploadedFile{
		PublicID:     result.PublicID,
		URL:          result.SecureURL,
		ResourceType: result.ResourceType,
		Format:       result.Format,
		Bytes:        int64(result.Bytes),
	}, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, publicID, resourceType string) error {
	if resourceType == "" || resourceType == "auto" {
		resourceType = "image"
	}
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: resourceType})
	if err != nil {
		return fmt.Errorf("CloudinaryStorage: failed to delete file: %w", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("CloudinaryStorage: delete returned %q", result.Result)
	}
	return nil
}
