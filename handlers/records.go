package handlers

import (
	"medlink/middleware"
	"medlink/models"
	"medlink/services/records"
	"medlink/utils"

	"github.com/gin-gonic/gin"
)

type RecordHandler struct {
	RecordService records.RecordService
}

// Upload expects a multipart form with a "file" part and an optional "name".
func (h *RecordHandler) Upload(c *gin.Context) {
	file, closer, err := formFile(c, "file")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	defer closeFile(closer)
	if file == nil {
		utils.RespondError(c, utils.NewError(utils.ErrValidation, "No file uploaded"))
		return
	}

	record, err := h.RecordService.Upload(c.Request.Context(), middleware.AccountID(c), c.PostForm("name"), file)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Record uploaded", "record": record})
}

func (h *RecordHandler) List(c *gin.Context) {
	list, err := h.RecordService.List(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"records": list})
}

func (h *RecordHandler) Rename(c *gin.Context) {
	var req models.RenameRecordRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.RecordService.Rename(c.Request.Context(), middleware.AccountID(c), c.Param("id"), req.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Record renamed", "record": record})
}

func (h *RecordHandler) Delete(c *gin.Context) {
	if err := h.RecordService.Delete(c.Request.Context(), middleware.AccountID(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Record deleted"})
}
