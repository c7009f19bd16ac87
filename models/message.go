package models

import "time"

const (
	MessageText  = "text"
	MessageImage = "image"
	MessageFile  = "file"
)

type Attachment struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"publicId" json:"-"`
	Name     string `bson:"name" json:"name"`
}

type Message struct {
	ID         string      `bson:"id" json:"id"`
	SenderID   string      `bson:"senderId" json:"senderId"`
	SenderRole Role        `bson:"senderRole" json:"senderRole"`
	ReceiverID string      `bson:"receiverId" json:"receiverId"`
	Content    string      `bson:"content" json:"content"`
	Type       string      `bson:"type" json:"type"`
	Attachment *Attachment `bson:"attachment,omitempty" json:"attachment,omitempty"`
	Read       bool        `bson:"read" json:"read"`
	CreatedAt  time.Time   `bson:"createdAt" json:"createdAt"`
}

// SendMessageRequest is bound from a multipart form; the attachment file, if
// any, travels in the "attachment" part.
type SendMessageRequest struct {
	ReceiverID string `form:"receiverId" json:"receiverId" binding:"required"`
	Content    string `form:"content" json:"content"`
	Type       string `form:"type" json:"type" binding:"omitempty,oneof=text image file"`
}

// ConversationSummary is one row of a user's inbox.
type ConversationSummary struct {
	UserID      string  `bson:"_id" json:"userId"`
	LastMessage Message `bson:"lastMessage" json:"lastMessage"`
	UnreadCount int     `bson:"unreadCount" json:"unreadCount"`
}
