package notification

import (
	"context"
	"fmt"

	"medlink/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// PushSender delivers a push notification to one device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// FCMPushSender sends pushes through Firebase Cloud Messaging.
type FCMPushSender struct {
	client *messaging.Client
}

func NewFCMPushSender(client *messaging.Client) *FCMPushSender {
	return &FCMPushSender{client: client}
}

func (s *FCMPushSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	id, err := s.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("FCMPushSender: failed to send message: %w", err)
	}
	utils.GetLogger().Debug("FCM message sent", zap.String("messageId", id))
	return nil
}
