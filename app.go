package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"medlink/config"
	"medlink/database"
	adminRepo "medlink/database/repository/admin"
	appointmentRepo "medlink/database/repository/appointment"
	doctorRepo "medlink/database/repository/doctor"
	healthRepo "medlink/database/repository/health"
	messageRepo "medlink/database/repository/message"
	orderRepo "medlink/database/repository/order"
	patientRepo "medlink/database/repository/patient"
	recordsRepo "medlink/database/repository/records"
	"medlink/handlers"
	"medlink/middleware"
	"medlink/services/admin"
	"medlink/services/auth"
	"medlink/services/booking"
	"medlink/services/contact"
	"medlink/services/doctor"
	"medlink/services/health"
	"medlink/services/intelligence"
	"medlink/services/medicine"
	"medlink/services/messaging"
	"medlink/services/notification"
	"medlink/services/order"
	"medlink/services/patient"
	"medlink/services/payment"
	"medlink/services/records"
	"medlink/services/storage"
	"medlink/services/tasks"
	"medlink/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// repositories holds every Mongo-backed store.
type repositories struct {
	patients     patientRepo.PatientRepository
	doctors      doctorRepo.DoctorRepository
	admins       adminRepo.AdminRepository
	appointments appointmentRepo.AppointmentRepository
	records      recordsRepo.MedicalRecordRepository
	messages     messageRepo.MessageRepository
	orders       orderRepo.OrderRepository
	health       healthRepo.HealthRepository
}

// bootstrap loads configuration and opens the shared connections every
// command needs.
func bootstrap() error {
	config.LoadConfig()
	utils.InitializeLogger()
	utils.SetJWTSecret(config.AppConfig.JWTSecret)
	if err := utils.RegisterValidations(); err != nil {
		return err
	}
	if err := database.InitDB(); err != nil {
		return err
	}
	return nil
}

func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Close(ctx); err != nil {
		utils.GetLogger().Warn("MongoDB close failed", zap.Error(err))
	}
	utils.CloseCache()
	_ = utils.GetLogger().Sync()
}

func newRepositories() *repositories {
	return &repositories{
		patients:     patientRepo.NewMongoPatientRepo(),
		doctors:      doctorRepo.NewMongoDoctorRepo(),
		admins:       adminRepo.NewMongoAdminRepo(),
		appointments: appointmentRepo.NewMongoAppointmentRepo(),
		records:      recordsRepo.NewMongoRecordRepo(),
		messages:     messageRepo.NewMongoMessageRepo(),
		orders:       orderRepo.NewMongoOrderRepo(),
		health:       healthRepo.NewMongoHealthRepo(),
	}
}

func newPaymentRegistry() *payment.Registry {
	logger := utils.GetLogger()
	var verifiers []payment.Verifier

	pp, err := payment.NewPayPalVerifier(config.AppConfig.PayPalClientID, config.AppConfig.PayPalClientSecret, config.AppConfig.PayPalMode, "")
	if err != nil {
		logger.Warn("PayPal verification disabled", zap.Error(err))
	} else {
		verifiers = append(verifiers, pp)
	}

	st, err := payment.NewStripeVerifier(config.AppConfig.StripeSecretKey)
	if err != nil {
		logger.Warn("Stripe verification disabled", zap.Error(err))
	} else {
		verifiers = append(verifiers, st)
	}
	return payment.NewRegistry(verifiers...)
}

func newMailer() notification.Mailer {
	cfg := config.AppConfig
	return notification.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
}

// newPushSender returns nil when Firebase is not configured.
func newPushSender(ctx context.Context) notification.PushSender {
	if config.AppConfig.FirebaseCredentialsFile == "" {
		return nil
	}
	client, err := utils.NewFCMClient(ctx, config.AppConfig.FirebaseCredentialsFile)
	if err != nil {
		utils.GetLogger().Warn("Push notifications disabled", zap.Error(err))
		return nil
	}
	return notification.NewFCMPushSender(client)
}

func newBookingService(repos *repositories, scheduler tasks.ReminderScheduler) *booking.DefaultBookingService {
	return &booking.DefaultBookingService{
		Doctors:      repos.doctors,
		Appointments: repos.appointments,
		Patients:     repos.patients,
		Payments:     newPaymentRegistry(),
		Reminders:    scheduler,
		ReminderLead: time.Duration(config.AppConfig.ReminderLeadHours) * time.Hour,
		Location:     time.UTC,
		Now:          time.Now,
	}
}

// newSymptomChecker returns nil when no model key is configured. The
// returned closer releases the model and speech clients.
func newSymptomChecker(ctx context.Context) (*intelligence.SymptomChecker, func()) {
	logger := utils.GetLogger()
	model, err := intelligence.NewGeminiClient(ctx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Warn("Symptom checker disabled", zap.Error(err))
		return nil, func() {}
	}

	var stt intelligence.Transcriber
	closers := []func() error{model.Close}
	if file := config.AppConfig.GoogleServiceAccountFile; file != "" {
		speech, err := intelligence.NewSpeechTranscriber(ctx, file)
		if err != nil {
			logger.Warn("Voice symptom checks disabled", zap.Error(err))
		} else {
			stt = speech
			closers = append(closers, speech.Close)
		}
	}
	return intelligence.NewSymptomChecker(model, stt), func() {
		for _, c := range closers {
			_ = c()
		}
	}
}

// app is the assembled HTTP application.
type app struct {
	bundle   *handlers.HandlerBundle
	auth     *middleware.Authenticator
	booking  *booking.DefaultBookingService
	closeFns []func()
}

func (a *app) close() {
	for _, fn := range a.closeFns {
		fn()
	}
}

func buildApp(ctx context.Context, queue *asynq.Client) (*app, error) {
	logger := utils.GetLogger()
	cfg := config.AppConfig

	cdn, err := storage.NewCloudinaryStorage(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary storage service: %w", err)
	}

	repos := newRepositories()
	bookingSvc := newBookingService(repos, tasks.NewAsynqReminderScheduler(queue))
	a := &app{booking: bookingSvc}

	var google patient.GoogleVerifier
	if cfg.GoogleClientID != "" {
		google = &patient.IDTokenVerifier{ClientID: cfg.GoogleClientID}
	}
	patientSvc := &patient.DefaultPatientService{Repo: repos.patients, Storage: cdn, Google: google}
	doctorSvc := &doctor.DefaultDoctorService{Repo: repos.doctors, Storage: cdn}
	orderSvc := &order.DefaultOrderService{Repo: repos.orders}
	adminSvc := &admin.DefaultAdminService{
		Repo:         repos.admins,
		Appointments: repos.appointments,
		Doctors:      repos.doctors,
		Patients:     repos.patients,
		Orders:       repos.orders,
		Now:          time.Now,
	}

	catalogue := medicine.NewCatalogue(cfg.MedicinesFile)
	lookup := medicine.NewLookup(catalogue, cfg.OpenFDAURL, &http.Client{Timeout: 10 * time.Second})

	symptoms := &handlers.SymptomHandler{}
	if checker, closeFn := newSymptomChecker(ctx); checker != nil {
		symptoms.Checker = checker
		a.closeFns = append(a.closeFns, closeFn)
	}

	a.auth = &middleware.Authenticator{
		Accounts: auth.NewAccountResolver(repos.patients, repos.doctors, repos.admins),
	}
	authHandler := &handlers.AuthHandler{}
	if err := utils.InitCache(); err != nil {
		logger.Warn("Redis unavailable, tokens are checked against MongoDB and medicine details are cached per process", zap.Error(err))
	} else {
		authCache := utils.NewAuthCache(utils.AuthCacheClient)
		a.auth.Store = authCache
		authHandler.Revoker = authCache
		lookup.WithSharedCache(utils.NewJSONCache(utils.CacheClient, "medicine:details:"))
	}

	a.bundle = &handlers.HandlerBundle{
		Patient:  &handlers.PatientHandler{PatientService: patientSvc, BookingService: bookingSvc},
		Doctor:   &handlers.DoctorHandler{DoctorService: doctorSvc, BookingService: bookingSvc},
		Admin:    &handlers.AdminHandler{AdminService: adminSvc, DoctorService: doctorSvc, BookingService: bookingSvc, OrderService: orderSvc},
		Records:  &handlers.RecordHandler{RecordService: &records.DefaultRecordService{Repo: repos.records, Storage: cdn}},
		Messages: &handlers.MessageHandler{MessagingService: &messaging.DefaultMessagingService{Repo: repos.messages, Storage: cdn}},
		Medicine: &handlers.MedicineHandler{Catalogue: catalogue, Lookup: lookup},
		Orders:   &handlers.OrderHandler{OrderService: orderSvc},
		Health: &handlers.HealthHandler{
			HealthService:  &health.DefaultHealthService{Repo: repos.health, Appointments: repos.appointments, Now: time.Now},
			BookingService: bookingSvc,
		},
		Symptoms: symptoms,
		Contact:  &handlers.ContactHandler{ContactService: &contact.DefaultContactService{Mailer: newMailer(), SupportEmail: cfg.SupportEmail}},
		Auth:     authHandler,
	}
	return a, nil
}
