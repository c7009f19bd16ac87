package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"medlink/models"
	"medlink/services/intelligence"
	"medlink/services/storage"
	"medlink/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetLogger(zap.NewNop())
}

type recordingRecords struct {
	name    string
	file    string
	content string
}

func (r *recordingRecords) Upload(_ context.Context, patientID, name string, file *storage.File) (*models.MedicalRecord, error) {
	data, err := io.ReadAll(file.Reader)
	if err != nil {
		return nil, err
	}
	r.name, r.file, r.content = name, file.Name, string(data)
	return &models.MedicalRecord{ID: "r1", PatientID: patientID, Name: name}, nil
}

func (r *recordingRecords) List(context.Context, string) ([]models.MedicalRecord, error) {
	return nil, nil
}

func (r *recordingRecords) Rename(context.Context, string, string, string) (*models.MedicalRecord, error) {
	return nil, utils.NewError(utils.ErrNotFound, "Record not found")
}

func (r *recordingRecords) Delete(context.Context, string, string) error { return nil }

func multipartRequest(t *testing.T, path, field, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func withAccount(id string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.CtxAccountID, id)
		h(c)
	}
}

func TestRecordUploadPassesFile(t *testing.T) {
	records := &recordingRecords{}
	h := &RecordHandler{RecordService: records}
	r := gin.New()
	r.POST("/records", withAccount("p1", h.Upload))
	r.PUT("/records/:id", withAccount("p1", h.Rename))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/records", "file", "scan.pdf", "%PDF", map[string]string{"name": "Blood test"}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Blood test", records.name)
	assert.Equal(t, "scan.pdf", records.file)
	assert.Equal(t, "%PDF", records.content)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/records", "", "", "", map[string]string{"name": "empty"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No file uploaded")

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/records/missing", bytes.NewBufferString(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type stubChecker struct {
	img   intelligence.Image
	note  string
	audio []byte
}

func (s *stubChecker) CheckText(_ context.Context, symptoms string) (*models.SymptomCheckResponse, error) {
	return &models.SymptomCheckResponse{Analysis: "echo: " + symptoms, Disclaimer: intelligence.Disclaimer}, nil
}

func (s *stubChecker) CheckImage(_ context.Context, img intelligence.Image, note string) (*models.SymptomCheckResponse, error) {
	s.img, s.note = img, note
	return &models.SymptomCheckResponse{Analysis: "image", Disclaimer: intelligence.Disclaimer}, nil
}

func (s *stubChecker) CheckVoice(_ context.Context, audio []byte, _ string) (*models.SymptomCheckResponse, error) {
	s.audio = audio
	return &models.SymptomCheckResponse{Analysis: "voice", Transcript: "cough", Disclaimer: intelligence.Disclaimer}, nil
}

func TestSymptomHandlers(t *testing.T) {
	checker := &stubChecker{}
	h := &SymptomHandler{Checker: checker}
	r := gin.New()
	r.POST("/text", h.Text)
	r.POST("/image", h.Image)
	r.POST("/voice", h.Voice)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/text", bytes.NewBufferString(`{"symptoms":"headache"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "echo: headache")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/image", "image", "rash.JPG", "jpegdata", map[string]string{"symptoms": "itchy"}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg", checker.img.Format)
	assert.Equal(t, []byte("jpegdata"), checker.img.Data)
	assert.Equal(t, "itchy", checker.note)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/image", "image", "notes.txt", "text", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/voice", "audio", "clip.wav", "RIFF", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte("RIFF"), checker.audio)
}

func TestSymptomCheckerNotConfigured(t *testing.T) {
	h := &SymptomHandler{}
	r := gin.New()
	r.POST("/text", h.Text)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/text", bytes.NewBufferString(`{"symptoms":"headache"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
