package messaging

import (
	"context"
	"errors"
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

type MockRepo struct{ mock.Mock }

func (m *MockRepo) Create(ctx context.Context, msg *models.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockRepo) Conversation(ctx context.Context, a, b string) ([]models.Message, error) {
	args := m.Called(ctx, a, b)
	msgs, _ := args.Get(0).([]models.Message)
	return msgs, args.Error(1)
}

func (m *MockRepo) MarkRead(ctx context.Context, senderID, receiverID string) (int64, error) {
	args := m.Called(ctx, senderID, receiverID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockRepo) Conversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]models.ConversationSummary)
	return out, args.Error(1)
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

func TestSendText(t *testing.T) {
	repo := new(MockRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Message) bool {
		return m.Type == models.MessageText && m.Content == "hello" && m.SenderRole == models.RolePatient
	})).Return(nil)

	svc := &DefaultMessagingService{Repo: repo}
	msg, err := svc.Send(context.Background(), "P", models.RolePatient, models.SendMessageRequest{ReceiverID: "D", Content: " hello "}, nil)
	require.NoError(t, err)
	assert.Equal(t, "D", msg.ReceiverID)
	assert.NotEmpty(t, msg.ID)
	repo.AssertExpectations(t)
}

func TestSendWithImageAttachment(t *testing.T) {
	repo := new(MockRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	store := new(MockStorage)
	store.On("Upload", mock.Anything, mock.Anything, storage.UploadOptions{
		Folder: storage.FolderAttachments, FileName: "xray.png", ResourceType: "image",
	}).Return(&storage.UploadedFile{URL: "https://cdn/xray.png", PublicID: "message-attachments/xray"}, nil)

	svc := &DefaultMessagingService{Repo: repo, Storage: store}
	msg, err := svc.Send(context.Background(), "D", models.RoleDoctor, models.SendMessageRequest{ReceiverID: "P"},
		&storage.File{Name: "xray.png", Size: 100, Reader: strings.NewReader("img")})
	require.NoError(t, err)
	assert.Equal(t, models.MessageImage, msg.Type)
	require.NotNil(t, msg.Attachment)
	assert.Equal(t, "https://cdn/xray.png", msg.Attachment.URL)
	store.AssertExpectations(t)
}

func TestSendValidation(t *testing.T) {
	svc := &DefaultMessagingService{Repo: new(MockRepo)}
	ctx := context.Background()

	cases := []models.SendMessageRequest{
		{ReceiverID: "", Content: "hi"},
		{ReceiverID: "P", Content: "hi"},
		{ReceiverID: "D", Content: "  "},
		{ReceiverID: "D", Content: "see file", Type: models.MessageFile},
	}
	for _, req := range cases {
		_, err := svc.Send(ctx, "P", models.RolePatient, req, nil)
		assert.True(t, errors.Is(err, utils.ErrValidation), "request %+v", req)
	}

	_, err := svc.Send(ctx, "P", models.RolePatient, models.SendMessageRequest{ReceiverID: "D"},
		&storage.File{Name: "big.pdf", Size: MaxAttachmentBytes + 1, Reader: strings.NewReader("")})
	assert.True(t, errors.Is(err, utils.ErrValidation))
}

func TestConversationMarksIncomingRead(t *testing.T) {
	repo := new(MockRepo)
	thread := []models.Message{{ID: "1", SenderID: "D", ReceiverID: "P"}, {ID: "2", SenderID: "P", ReceiverID: "D"}}
	repo.On("Conversation", mock.Anything, "P", "D").Return(thread, nil)
	repo.On("MarkRead", mock.Anything, "D", "P").Return(1, nil)

	svc := &DefaultMessagingService{Repo: repo}
	msgs, err := svc.Conversation(context.Background(), "P", "D")
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
	repo.AssertExpectations(t)
}
