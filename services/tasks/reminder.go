package tasks

import (
	"context"
	"fmt"
	"time"

	"medlink/models"

	json "github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

const (
	TypeAppointmentReminder = "appointment:reminder"
	ReminderQueue           = "reminders"
)

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{
		asynq.Queue(ReminderQueue),
		asynq.MaxRetry(3),
		asynq.ProcessAt(fireAt),
	}
	return task, opts, nil
}

// ParseReminderTask decodes the payload written by NewReminderTask.
func ParseReminderTask(task *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid reminder payload: %w", err)
	}
	if p.AppointmentID == "" {
		return p, fmt.Errorf("reminder payload has no appointment id")
	}
	return p, nil
}

// ReminderScheduler queues appointment reminders.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}

type AsynqReminderScheduler struct {
	client *asynq.Client
}

func NewAsynqReminderScheduler(client *asynq.Client) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: client}
}

func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
