package handlers

import (
	"medlink/middleware"
	"medlink/models"
	"medlink/services/booking"
	"medlink/services/doctor"
	"medlink/utils"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	DoctorService  doctor.DoctorService
	BookingService booking.BookingService
}

func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.DoctorService.ListPublic(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"doctors": doctors})
}

func (h *DoctorHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.DoctorService.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"token": resp.Token, "user": resp})
}

func (h *DoctorHandler) Profile(c *gin.Context) {
	d, err := h.DoctorService.GetProfile(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"profileData": d})
}

func (h *DoctorHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateDoctorProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.DoctorService.UpdateProfile(c.Request.Context(), middleware.AccountID(c), req); err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Profile Updated"})
}

func (h *DoctorHandler) ChangeAvailability(c *gin.Context) {
	available, err := h.DoctorService.ChangeAvailability(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Availability Changed", "available": available})
}

func (h *DoctorHandler) Appointments(c *gin.Context) {
	appts, err := h.BookingService.ListForDoctor(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"appointments": appts})
}

func (h *DoctorHandler) MarkCompleted(c *gin.Context) {
	var req models.AppointmentIDRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.BookingService.Complete(c.Request.Context(), middleware.AccountID(c), req.AppointmentID); err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Appointment Completed"})
}

func (h *DoctorHandler) SendReminder(c *gin.Context) {
	var req models.AppointmentIDRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.BookingService.SendReminder(c.Request.Context(), middleware.AccountID(c), req.AppointmentID); err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Reminder sent"})
}
