package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"medlink/models"
	"medlink/services/tasks"
	"medlink/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	utils.SetLogger(zap.NewNop())
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendAppointmentReminder(ctx context.Context, p models.ReminderPayload) error {
	return m.Called(ctx, p).Error(0)
}

func TestHandleReminderTaskDropsBadPayloads(t *testing.T) {
	sender := new(MockSender)
	handler := HandleReminderTask(sender)

	for name, payload := range map[string][]byte{
		"not json":       []byte("{"),
		"no appointment": []byte(`{"patientId":"P"}`),
	} {
		t.Run(name, func(t *testing.T) {
			err := handler(context.Background(), asynq.NewTask(tasks.TypeAppointmentReminder, payload))
			assert.True(t, errors.Is(err, asynq.SkipRetry), "got %v", err)
		})
	}
	sender.AssertNotCalled(t, "SendAppointmentReminder", mock.Anything, mock.Anything)
}

func TestHandleReminderTaskDelivers(t *testing.T) {
	ctx := context.Background()
	payload := models.ReminderPayload{AppointmentID: "A1", PatientID: "P"}
	task, _, err := tasks.NewReminderTask(payload, time.Now())
	require.NoError(t, err)

	sender := new(MockSender)
	sender.On("SendAppointmentReminder", ctx, payload).Return(nil).Once()
	require.NoError(t, HandleReminderTask(sender)(ctx, task))
	sender.AssertExpectations(t)
}

func TestHandleReminderTaskRetriesSenderFailures(t *testing.T) {
	ctx := context.Background()
	payload := models.ReminderPayload{AppointmentID: "A1"}
	task, _, err := tasks.NewReminderTask(payload, time.Now())
	require.NoError(t, err)

	sender := new(MockSender)
	sender.On("SendAppointmentReminder", ctx, payload).Return(errors.New("smtp down"))
	err = HandleReminderTask(sender)(ctx, task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}
