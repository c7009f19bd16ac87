package messaging

import (
	"context"
	"strings"

	messageRepo "medlink/database/repository/message"
	"medlink/models"
	"medlink/services/storage"
	"medlink/utils"

	"go.uber.org/zap"
)

// MaxAttachmentBytes caps a single message attachment.
const MaxAttachmentBytes = 10 << 20

type MessagingService interface {
	Send(ctx context.Context, senderID string, senderRole models.Role, req models.SendMessageRequest, attachment *storage.File) (*models.Message, error)
	// Conversation returns the thread with otherID and marks what otherID
	// sent to userID as read.
	Conversation(ctx context.Context, userID, otherID string) ([]models.Message, error)
	Conversations(ctx context.Context, userID string) ([]models.ConversationSummary, error)
}

type DefaultMessagingService struct {
	Repo    messageRepo.MessageRepository
	Storage storage.StorageService
}

func (s *DefaultMessagingService) Send(ctx context.Context, senderID string, senderRole models.Role, req models.SendMessageRequest, attachment *storage.File) (*models.Message, error) {
	receiverID := strings.TrimSpace(req.ReceiverID)
	content := strings.TrimSpace(req.Content)
	if receiverID == "" {
		return nil, utils.NewError(utils.ErrValidation, "Receiver is required")
	}
	if receiverID == senderID {
		return nil, utils.NewError(utils.ErrValidation, "You cannot message yourself")
	}
	if content == "" && attachment == nil {
		return nil, utils.NewError(utils.ErrValidation, "Message content or attachment is required")
	}
	if req.Type != "" && attachment == nil && req.Type != models.MessageText {
		return nil, utils.NewError(utils.ErrValidation, "Attachment is required for this message type")
	}

	msg := &models.Message{
		ID:         utils.NewID(),
		SenderID:   senderID,
		SenderRole: senderRole,
		ReceiverID: receiverID,
		Content:    content,
		Type:       models.MessageText,
	}

	if attachment != nil {
		if attachment.Size > MaxAttachmentBytes {
			return nil, utils.NewError(utils.ErrValidation, "Attachment is too large")
		}
		if s.Storage == nil {
			return nil, utils.NewError(utils.ErrValidation, "Attachments are not enabled")
		}
		resourceType := storage.ResourceTypeFor(attachment.Name)
		uploaded, err := s.Storage.Upload(ctx, attachment.Reader, storage.UploadOptions{
			Folder:       storage.FolderAttachments,
			FileName:     attachment.Name,
			ResourceType: resourceType,
		})
		if err != nil {
			utils.GetLogger().Error("Send: attachment upload failed", zap.String("senderID", senderID), zap.Error(err))
			return nil, utils.WrapError(utils.ErrUpstream, "Attachment upload failed", err)
		}
		msg.Attachment = &models.Attachment{URL: uploaded.URL, PublicID: uploaded.PublicID, Name: attachment.Name}
		msg.Type = models.MessageFile
		if resourceType == "image" {
			msg.Type = models.MessageImage
		}
	}

	if err := s.Repo.Create(ctx, msg); err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to send message", err)
	}
	return msg, nil
}

func (s *DefaultMessagingService) Conversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	msgs, err := s.Repo.Conversation(ctx, userID, otherID)
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to load conversation", err)
	}
	if _, err := s.Repo.MarkRead(ctx, otherID, userID); err != nil {
		utils.GetLogger().Warn("Conversation: failed to mark messages read", zap.String("userID", userID), zap.Error(err))
	}
	return msgs, nil
}

func (s *DefaultMessagingService) Conversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	summaries, err := s.Repo.Conversations(ctx, userID)
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to load conversations", err)
	}
	return summaries, nil
}
