package records

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"medlink/models"
	"medlink/services/storage"
	"medlink/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	utils.SetLogger(zap.NewNop())
}

type memRecords struct {
	byID map[string]*models.MedicalRecord
}

func (m *memRecords) Create(_ context.Context, r *models.MedicalRecord) error {
	cp := *r
	m.byID[r.ID] = &cp
	return nil
}

func (m *memRecords) GetByID(_ context.Context, id string) (*models.MedicalRecord, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("record: %w", utils.ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

func (m *memRecords) ListByPatient(_ context.Context, patientID string) ([]models.MedicalRecord, error) {
	var out []models.MedicalRecord
	for _, r := range m.byID {
		if r.PatientID == patientID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRecords) Rename(_ context.Context, id, name string) (*models.MedicalRecord, error) {
	r := m.byID[id]
	r.Name = name
	cp := *r
	return &cp, nil
}

func (m *memRecords) DeleteByID(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type MockStorage struct{ mock.Mock }

func (m *MockStorage) Upload(ctx context.Context, file io.Reader, opts storage.UploadOptions) (*storage.UploadedFile, error) {
	args := m.Called(ctx, file, opts)
	f, _ := args.Get(0).(*storage.UploadedFile)
	return f, args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, publicID, resourceType string) error {
	return m.Called(ctx, publicID, resourceType).Error(0)
}

func newService() (*DefaultRecordService, *memRecords, *MockStorage) {
	repo := &memRecords{byID: map[string]*models.MedicalRecord{}}
	store := new(MockStorage)
	return &DefaultRecordService{Repo: repo, Storage: store}, repo, store
}

func TestUploadPicksResourceTypeAndName(t *testing.T) {
	svc, _, store := newService()
	store.On("Upload", mock.Anything, mock.Anything, storage.UploadOptions{
		Folder: models.MedicalRecordsFolder, FileName: "blood-test.pdf", ResourceType: "raw",
	}).Return(&storage.UploadedFile{PublicID: "medical-records/blood-test.pdf", URL: "https://cdn/bt.pdf", ResourceType: "raw", Format: "pdf", Bytes: 42}, nil)

	rec, err := svc.Upload(context.Background(), "P", "", &storage.File{Name: "blood-test.pdf", Size: 42, Reader: strings.NewReader("%PDF")})
	require.NoError(t, err)
	assert.Equal(t, "blood-test", rec.Name)
	assert.Equal(t, "raw", rec.ResourceType)
	assert.EqualValues(t, 42, rec.Size)
	store.AssertExpectations(t)
}

func TestUploadRejectsMissingAndLargeFiles(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.Upload(context.Background(), "P", "x", nil)
	assert.True(t, errors.Is(err, utils.ErrValidation))
	_, err = svc.Upload(context.Background(), "P", "x", &storage.File{Name: "a.pdf", Size: MaxRecordBytes + 1})
	assert.True(t, errors.Is(err, utils.ErrValidation))
}

func TestRenameAndDeleteAreOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newService()
	require.NoError(t, repo.Create(ctx, &models.MedicalRecord{ID: "r1", PatientID: "P", Name: "old", PublicID: "medical-records/r1", ResourceType: "image"}))

	_, err := svc.Rename(ctx, "Q", "r1", "new")
	assert.True(t, errors.Is(err, utils.ErrForbidden))
	assert.True(t, errors.Is(svc.Delete(ctx, "Q", "r1"), utils.ErrForbidden))

	rec, err := svc.Rename(ctx, "P", "r1", " new ")
	require.NoError(t, err)
	assert.Equal(t, "new", rec.Name)

	store.On("Delete", mock.Anything, "medical-records/r1", "image").Return(nil).Once()
	require.NoError(t, svc.Delete(ctx, "P", "r1"))
	assert.Empty(t, repo.byID)

	assert.True(t, errors.Is(svc.Delete(ctx, "P", "r1"), utils.ErrNotFound))
	store.AssertExpectations(t)
}

func TestDeleteKeepsRecordWhenCDNFails(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newService()
	require.NoError(t, repo.Create(ctx, &models.MedicalRecord{ID: "r1", PatientID: "P", PublicID: "x", ResourceType: "raw"}))
	store.On("Delete", mock.Anything, "x", "raw").Return(errors.New("cdn down"))

	err := svc.Delete(ctx, "P", "r1")
	assert.True(t, errors.Is(err, utils.ErrUpstream))
	assert.Contains(t, repo.byID, "r1")
}
