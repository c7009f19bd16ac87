package routes

import (
	"context"
	"net/http"
	"time"

	"medlink/handlers"
	"medlink/middleware"
	"medlink/models"
	"medlink/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options carries the cross-cutting pieces the router needs besides handlers.
type Options struct {
	Auth           *middleware.Authenticator
	Metrics        *middleware.Metrics
	AllowedOrigins []string
	RequestsPerMin int
	// Health reports dependency status for GET /health; nil reports healthy.
	Health func(ctx context.Context) utils.HealthStatus
}

var (
	patientOnly = []models.Role{models.RolePatient}
	doctorOnly  = []models.Role{models.RoleDoctor}
	adminOnly   = []models.Role{models.RoleAdmin}
	anyAccount  = []models.Role{models.RolePatient, models.RoleDoctor, models.RoleAdmin}
)

// RegisterPatientRoutes registers patient account, appointment and record endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth *middleware.Authenticator) {
	api := r.Group("/api/user")
	{
		api.POST("/register", hb.Patient.Register)
		api.POST("/login", hb.Patient.Login)
		api.POST("/google-login", hb.Patient.GoogleLogin)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(auth.RequireRole(patientOnly...))
		protected.GET("/getprofile", hb.Patient.GetProfile)
		protected.POST("/updateprofile", hb.Patient.UpdateProfile)
		protected.POST("/bookappointment", hb.Patient.BookAppointment)
		protected.GET("/appointments", hb.Patient.ListAppointments)
		protected.POST("/cancelappointment", hb.Patient.CancelAppointment)
		protected.POST("/verify-payment", hb.Patient.VerifyPayment)
		protected.POST("/verify-paypal", hb.Patient.VerifyPayPalPayment)

		protected.POST("/medical-records", hb.Records.Upload)
		protected.GET("/medical-records", hb.Records.List)
		protected.PUT("/medical-records/:id", hb.Records.Rename)
		protected.DELETE("/medical-records/:id", hb.Records.Delete)

		protected.POST("/logout", hb.Auth.Logout)
	}
}

// RegisterDoctorRoutes registers doctor endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth *middleware.Authenticator) {
	api := r.Group("/api/doctor")
	{
		api.GET("/list", hb.Doctor.List)
		api.POST("/login", hb.Doctor.Login)

		protected := api.Group("")
		protected.Use(auth.RequireRole(doctorOnly...))
		protected.GET("/profile", hb.Doctor.Profile)
		protected.POST("/update-profile", hb.Doctor.UpdateProfile)
		protected.GET("/appointments", hb.Doctor.Appointments)
		protected.POST("/complete-appointment", hb.Doctor.MarkCompleted)
		protected.POST("/mark-completed", hb.Doctor.MarkCompleted)
		protected.POST("/send-reminder", hb.Doctor.SendReminder)
		protected.POST("/change-availability", hb.Doctor.ChangeAvailability)
		protected.POST("/logout", hb.Auth.Logout)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth *middleware.Authenticator) {
	api := r.Group("/api/admin")
	{
		api.POST("/login", hb.Admin.Login)

		protected := api.Group("")
		protected.Use(auth.RequireRole(adminOnly...))
		protected.POST("/add-doctor", hb.Admin.AddDoctor)
		protected.GET("/all-doctors", hb.Admin.AllDoctors)
		protected.POST("/change-availability", hb.Admin.ChangeAvailability)
		protected.POST("/update-doctor-profile", hb.Admin.UpdateDoctorProfile)
		protected.GET("/appointments", hb.Admin.Appointments)
		protected.POST("/cancel-appointment", hb.Admin.CancelAppointment)
		protected.GET("/orders", hb.Admin.Orders)
		protected.POST("/orders/update-status", hb.Admin.UpdateOrderStatus)
		protected.GET("/dashboard", hb.Admin.Dashboard)
		protected.POST("/logout", hb.Auth.Logout)
	}
}

// RegisterMessageRoutes registers messaging between any two accounts.
func RegisterMessageRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth *middleware.Authenticator) {
	api := r.Group("/api/messages")
	{
		api.Use(auth.RequireRole(anyAccount...))
		api.POST("", hb.Messages.Send)
		api.GET("/conversation/:otherUserId", hb.Messages.Conversation)
		api.GET("/conversations", hb.Messages.Conversations)
	}
}

// RegisterMedicineRoutes registers the public medicine catalogue.
func RegisterMedicineRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/medicines")
	{
		api.GET("", hb.Medicine.List)
		api.GET("/:id", hb.Medicine.Get)
		api.GET("/:id/online", hb.Medicine.Online)
	}
}

// RegisterOrderRoutes registers patient medicine orders.
func RegisterOrderRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth *middleware.Authenticator) {
	api := r.Group("/api/orders")
	{
		api.Use(auth.RequireRole(patientOnly...))
		api.POST("", hb.Orders.Create)
		api.POST("/update-payment-status", hb.Orders.UpdatePaymentStatus)
		api.GET("/my-orders", hb.Orders.Mine)
	}
}

// RegisterHealthAnalyticsRoutes registers the patient health dashboard.
func RegisterHealthAnalyticsRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth *middleware.Authenticator) {
	api := r.Group("/api/health")
	{
		api.Use(auth.RequireRole(patientOnly...))
		api.GET("/analytics", hb.Health.Analytics)
		api.POST("/vitalsigns", hb.Health.RecordVitals)
		api.POST("/medication", hb.Health.AddMedication)
		api.GET("/appointments", hb.Health.Appointments)
	}
}

// RegisterSymptomRoutes registers the AI symptom checker.
func RegisterSymptomRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth *middleware.Authenticator) {
	api := r.Group("/api/symptom-checker")
	{
		api.Use(auth.RequireRole(patientOnly...))
		api.POST("", hb.Symptoms.Text)
		api.POST("/image", hb.Symptoms.Image)
		api.POST("/voice", hb.Symptoms.Voice)
	}
}

// RegisterContactRoutes registers the public forms and the signed-in support form.
func RegisterContactRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth *middleware.Authenticator) {
	r.POST("/api/contact/submit", hb.Contact.Contact)
	r.POST("/api/getintouch/submit", hb.Contact.GetInTouch)
	r.POST("/api/support", auth.RequireRole(anyAccount...), hb.Contact.Support)
}

// RegisterRootRoutes registers the banner, health-check and metrics endpoints.
func RegisterRootRoutes(r *gin.Engine, opts Options) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API Working")
	})
	r.GET("/health", func(c *gin.Context) {
		if opts.Health == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		status := opts.Health(c.Request.Context())
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
	if opts.Metrics != nil {
		r.GET("/metrics", opts.Metrics.Handler())
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}
	r.Use(middleware.RateLimitMiddleware(opts.RequestsPerMin))

	RegisterRootRoutes(r, opts)
	RegisterPatientRoutes(r, hb, opts.Auth)
	RegisterDoctorRoutes(r, hb, opts.Auth)
	RegisterAdminRoutes(r, hb, opts.Auth)
	RegisterMessageRoutes(r, hb, opts.Auth)
	RegisterMedicineRoutes(r, hb)
	RegisterOrderRoutes(r, hb, opts.Auth)
	RegisterHealthAnalyticsRoutes(r, hb, opts.Auth)
	RegisterSymptomRoutes(r, hb, opts.Auth)
	RegisterContactRoutes(r, hb, opts.Auth)
}
