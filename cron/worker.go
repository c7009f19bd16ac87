package cron

import (
	"context"

	"medlink/config"
	"medlink/models"
	"medlink/services/tasks"
	"medlink/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderSender is satisfied by notification.ReminderNotifier.
type ReminderSender interface {
	SendAppointmentReminder(ctx context.Context, p models.ReminderPayload) error
}

// QueueRedisOpt is the Redis connection used by the task queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewReminderWorker builds the asynq server and its handler mux.
func NewReminderWorker(sender ReminderSender) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				tasks.ReminderQueue: 1,
			},
			Logger: zapAsynqLogger{utils.GetLogger().Sugar()},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAppointmentReminder, HandleReminderTask(sender))
	return srv, mux
}

func HandleReminderTask(sender ReminderSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		p, err := tasks.ParseReminderTask(task)
		if err != nil {
			logger.Error("ReminderWorker: dropping task", zap.Error(err))
			return asynq.SkipRetry
		}

		logger.Info("ReminderWorker: sending reminder", zap.String("appointmentId", p.AppointmentID))
		if err := sender.SendAppointmentReminder(ctx, p); err != nil {
			logger.Error("ReminderWorker: reminder failed", zap.String("appointmentId", p.AppointmentID), zap.Error(err))
			return err
		}
		return nil
	}
}

type zapAsynqLogger struct {
	s *zap.SugaredLogger
}

func (l zapAsynqLogger) Debug(args ...interface{}) { l.s.Debug(args...) }
func (l zapAsynqLogger) Info(args ...interface{})  { l.s.Info(args...) }
func (l zapAsynqLogger) Warn(args ...interface{})  { l.s.Warn(args...) }
func (l zapAsynqLogger) Error(args ...interface{}) { l.s.Error(args...) }
func (l zapAsynqLogger) Fatal(args ...interface{}) { l.s.Fatal(args...) }
