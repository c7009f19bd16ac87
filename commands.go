package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medlink/config"
	"medlink/cron"
	"medlink/database"
	adminRepo "medlink/database/repository/admin"
	appointmentRepo "medlink/database/repository/appointment"
	doctorRepo "medlink/database/repository/doctor"
	patientRepo "medlink/database/repository/patient"
	"medlink/middleware"
	"medlink/routes"
	"medlink/services/admin"
	"medlink/services/notification"
	"medlink/services/tasks"
	"medlink/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var withWorker bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap(); err != nil {
				return err
			}
			defer shutdown()
			return runServer(cmd.Context(), withWorker)
		},
	}
	cmd.Flags().BoolVar(&withWorker, "with-worker", true, "also process reminder tasks in this process")
	return cmd
}

func runServer(ctx context.Context, withWorker bool) error {
	logger := utils.GetLogger()

	queue := asynq.NewClient(cron.QueueRedisOpt())
	defer queue.Close()

	a, err := buildApp(ctx, queue)
	if err != nil {
		return err
	}
	defer a.close()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.RegisterRoutes(router, a.bundle, routes.Options{
		Auth:           a.auth,
		Metrics:        middleware.NewMetrics(),
		AllowedOrigins: config.AllowedOrigins(),
		RequestsPerMin: config.AppConfig.MaxRequestsPerMin,
		Health: func(ctx context.Context) utils.HealthStatus {
			return utils.CheckHealth(ctx, database.Ping, utils.CacheClient, utils.AuthCacheClient)
		},
	})

	var worker *asynq.Server
	if withWorker {
		notifier := notification.NewReminderNotifier(a.booking, newMailer(), newPushSender(ctx))
		srv, mux := cron.NewReminderWorker(notifier)
		if err := srv.Start(mux); err != nil {
			return fmt.Errorf("failed to start reminder worker: %w", err)
		}
		worker = srv
	}

	port := config.AppConfig.AppPort
	if port == "" {
		port = "4000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}
	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	logger.Info("Server stopped gracefully")
	return nil
}

func workerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Process queued appointment reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap(); err != nil {
				return err
			}
			defer shutdown()

			ctx := context.Background()
			queue := asynq.NewClient(cron.QueueRedisOpt())
			defer queue.Close()

			repos := newRepositories()
			source := newBookingService(repos, tasks.NewAsynqReminderScheduler(queue))
			notifier := notification.NewReminderNotifier(source, newMailer(), newPushSender(ctx))

			srv, mux := cron.NewReminderWorker(notifier)
			utils.GetLogger().Info("Reminder worker started")
			// Run blocks until SIGTERM or SIGINT.
			return srv.Run(mux)
		},
	}
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	var name, email, password string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap(); err != nil {
				return err
			}
			defer shutdown()

			svc := &admin.DefaultAdminService{
				Repo:         adminRepo.NewMongoAdminRepo(),
				Appointments: appointmentRepo.NewMongoAppointmentRepo(),
				Doctors:      doctorRepo.NewMongoDoctorRepo(),
				Patients:     patientRepo.NewMongoPatientRepo(),
				Now:          time.Now,
			}
			a, err := svc.CreateAdmin(context.Background(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created with id %s\n", a.Email, a.ID)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "Admin", "display name")
	create.Flags().StringVar(&email, "email", "", "login email")
	create.Flags().StringVar(&password, "password", "", "login password")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}
