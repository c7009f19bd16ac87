package handlers

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"medlink/models"
	"medlink/services/intelligence"
	"medlink/utils"

	"github.com/gin-gonic/gin"
)

const maxImageBytes = 5 * 1024 * 1024

type SymptomChecker interface {
	CheckText(ctx context.Context, symptoms string) (*models.SymptomCheckResponse, error)
	CheckImage(ctx context.Context, img intelligence.Image, note string) (*models.SymptomCheckResponse, error)
	CheckVoice(ctx context.Context, audio []byte, language string) (*models.SymptomCheckResponse, error)
}

type SymptomHandler struct {
	Checker SymptomChecker
}

func (h *SymptomHandler) available(c *gin.Context) bool {
	if h.Checker == nil {
		utils.RespondError(c, utils.NewError(utils.ErrUpstream, "Symptom checker is not configured"))
		return false
	}
	return true
}

func (h *SymptomHandler) Text(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var req models.SymptomCheckRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Checker.CheckText(c.Request.Context(), req.Symptoms)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"data": resp})
}

// readUpload reads a required multipart part of at most limit bytes.
func readUpload(c *gin.Context, field string, limit int64, tooLarge string) ([]byte, string, error) {
	file, closer, err := formFile(c, field)
	if err != nil {
		return nil, "", err
	}
	defer closeFile(closer)
	if file == nil {
		return nil, "", utils.NewError(utils.ErrValidation, "No file uploaded")
	}
	if file.Size > limit {
		return nil, "", utils.NewError(utils.ErrValidation, tooLarge)
	}
	data, err := io.ReadAll(io.LimitReader(file.Reader, limit))
	if err != nil {
		return nil, "", utils.WrapError(utils.ErrInternal, "Could not read uploaded file", err)
	}
	return data, file.Name, nil
}

func imageFormat(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "jpg" {
		return "jpeg"
	}
	return ext
}

func (h *SymptomHandler) Image(c *gin.Context) {
	if !h.available(c) {
		return
	}
	data, name, err := readUpload(c, "image", maxImageBytes, "Image must be up to 5MB")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	switch imageFormat(name) {
	case "jpeg", "png", "webp":
	default:
		utils.RespondError(c, utils.NewError(utils.ErrValidation, "Image must be JPEG, PNG or WEBP"))
		return
	}

	img := intelligence.Image{Format: imageFormat(name), Data: data}
	resp, err := h.Checker.CheckImage(c.Request.Context(), img, c.PostForm("symptoms"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"data": resp})
}

func (h *SymptomHandler) Voice(c *gin.Context) {
	if !h.available(c) {
		return
	}
	data, _, err := readUpload(c, "audio", intelligence.MaxAudioBytes, "Audio must be a WAV file up to 5MB")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	resp, err := h.Checker.CheckVoice(c.Request.Context(), data, c.DefaultPostForm("language", "en-US"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"data": resp})
}
