package handlers

import (
	"medlink/middleware"
	"medlink/models"
	"medlink/services/messaging"
	"medlink/utils"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	MessagingService messaging.MessagingService
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req models.SendMessageRequest
	if !bindForm(c, &req) {
		return
	}
	attachment, closer, err := formFile(c, "attachment")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	defer closeFile(closer)

	msg, err := h.MessagingService.Send(c.Request.Context(), middleware.AccountID(c), middleware.Role(c), req, attachment)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": msg})
}

func (h *MessageHandler) Conversation(c *gin.Context) {
	msgs, err := h.MessagingService.Conversation(c.Request.Context(), middleware.AccountID(c), c.Param("otherUserId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"messages": msgs})
}

func (h *MessageHandler) Conversations(c *gin.Context) {
	list, err := h.MessagingService.Conversations(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"conversations": list})
}
