package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

// StorageService defines the CDN operations the rest of the app needs.
type StorageService interface {
	Upload(ctx context.Context, file io.Reader, opts UploadOptions) (*UploadedFile, error)
	Delete(ctx context.Context, publicID, resourceType string) error
}

type UploadOptions struct {
	Folder       string
	FileName     string
	ResourceType string // "image", "raw", "video" or "auto"
}

type UploadedFile struct {
	PublicID     string
	URL          string
	ResourceType string
	Format       string
	Bytes        int64
}

// Folders used by the app.
const (
	FolderProfiles    = "profiles"
	FolderDoctors     = "doctors"
	FolderAttachments = "message-attachments"
)

// ResourceTypeFor picks the CDN resource type from a file's extension:
// images upload as "image", documents as "raw", anything else as "auto".
func ResourceTypeFor(filename string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "jpg", "jpeg", "png", "gif", "webp", "bmp", "svg":
		return "image"
	case "pdf", "doc", "docx", "txt", "rtf", "csv", "xls", "xlsx":
		return "raw"
	default:
		return "auto"
	}
}

// File is an uploaded file handed from a handler to a service.
type File struct {
	Name   string
	Size   int64
	Reader io.Reader
}
