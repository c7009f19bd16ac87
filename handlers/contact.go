package handlers

import (
	"medlink/middleware"
	"medlink/models"
	"medlink/services/contact"
	"medlink/utils"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	ContactService contact.ContactService
}

func (h *ContactHandler) Contact(c *gin.Context) {
	var req models.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.ContactService.Contact(c.Request.Context(), req); err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Message sent successfully"})
}

func (h *ContactHandler) GetInTouch(c *gin.Context) {
	var req models.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.ContactService.GetInTouch(c.Request.Context(), req); err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Message sent successfully"})
}

func (h *ContactHandler) Support(c *gin.Context) {
	var req models.SupportRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.ContactService.Support(c.Request.Context(), c.GetString(utils.CtxEmail), middleware.Role(c), req); err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Support request sent"})
}
