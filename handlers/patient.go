package handlers

import (
	"medlink/middleware"
	"medlink/models"
	"medlink/services/booking"
	"medlink/services/patient"
	"medlink/utils"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	PatientService patient.PatientService
	BookingService booking.BookingService
}

func (h *PatientHandler) Register(c *gin.Context) {
	var req models.RegisterPatientRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.PatientService.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"token": resp.Token, "user": resp})
}

func (h *PatientHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.PatientService.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"token": resp.Token, "user": resp})
}

func (h *PatientHandler) GoogleLogin(c *gin.Context) {
	var req models.GoogleLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.PatientService.GoogleLogin(c.Request.Context(), req.Credential)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"token": resp.Token, "user": resp})
}

func (h *PatientHandler) GetProfile(c *gin.Context) {
	p, err := h.PatientService.GetProfile(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"userData": p})
}

// UpdateProfile accepts a multipart form with an optional "image" part.
func (h *PatientHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdatePatientProfileRequest
	if !bindForm(c, &req) {
		return
	}
	image, closer, err := formFile(c, "image")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	defer closeFile(closer)

	p, err := h.PatientService.UpdateProfile(c.Request.Context(), middleware.AccountID(c), req, image)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Profile Updated", "userData": p})
}

func (h *PatientHandler) BookAppointment(c *gin.Context) {
	var req models.BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.BookingService.Book(c.Request.Context(), middleware.AccountID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Appointment Booked", "appointment": appt})
}

func (h *PatientHandler) ListAppointments(c *gin.Context) {
	appts, err := h.BookingService.ListForPatient(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"appointments": appts})
}

func (h *PatientHandler) CancelAppointment(c *gin.Context) {
	var req models.AppointmentIDRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.BookingService.CancelByPatient(c.Request.Context(), middleware.AccountID(c), req.AppointmentID); err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Appointment Cancelled"})
}

func (h *PatientHandler) VerifyPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.BookingService.MarkPaid(c.Request.Context(), middleware.AccountID(c), req.AppointmentID, req.PaymentConfirmation); err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Payment verified"})
}

// VerifyPayPalPayment keeps the PayPal-only payload the web client posts.
func (h *PatientHandler) VerifyPayPalPayment(c *gin.Context) {
	var req models.PayPalVerifyRequest
	if !bindJSON(c, &req) {
		return
	}
	conf := models.PaymentConfirmation{Provider: "paypal", Reference: req.OrderID}
	if err := h.BookingService.MarkPaid(c.Request.Context(), middleware.AccountID(c), req.AppointmentID, conf); err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Payment verified"})
}
