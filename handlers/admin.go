package handlers

import (
	"medlink/models"
	"medlink/services/admin"
	"medlink/services/booking"
	"medlink/services/doctor"
	"medlink/services/order"
	"medlink/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	AdminService   admin.AdminService
	DoctorService  doctor.DoctorService
	BookingService booking.BookingService
	OrderService   order.OrderService
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.AdminService.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"token": resp.Token, "user": resp})
}

// AddDoctor takes the doctor's details as multipart form fields plus a
// required "image" part.
func (h *AdminHandler) AddDoctor(c *gin.Context) {
	var req models.AddDoctorRequest
	if !bindForm(c, &req) {
		return
	}
	image, closer, err := formFile(c, "image")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	defer closeFile(closer)

	d, err := h.DoctorService.AddDoctor(c.Request.Context(), req, image)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Doctor Added", "doctor": d})
}

func (h *AdminHandler) AllDoctors(c *gin.Context) {
	doctors, err := h.DoctorService.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"doctors": doctors})
}

func (h *AdminHandler) ChangeAvailability(c *gin.Context) {
	var req models.DoctorIDRequest
	if !bindJSON(c, &req) {
		return
	}
	available, err := h.DoctorService.ChangeAvailability(c.Request.Context(), req.DoctorID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Availability Changed", "available": available})
}

type adminDoctorUpdate struct {
	DoctorID string `json:"docId" binding:"required"`
	models.UpdateDoctorProfileRequest
}

func (h *AdminHandler) UpdateDoctorProfile(c *gin.Context) {
	var req adminDoctorUpdate
	if !bindJSON(c, &req) {
		return
	}
	if err := h.DoctorService.UpdateProfile(c.Request.Context(), req.DoctorID, req.UpdateDoctorProfileRequest); err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Doctor profile updated"})
}

func (h *AdminHandler) Appointments(c *gin.Context) {
	appts, err := h.BookingService.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"appointments": appts})
}

func (h *AdminHandler) CancelAppointment(c *gin.Context) {
	var req models.AppointmentIDRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.BookingService.CancelByAdmin(c.Request.Context(), req.AppointmentID); err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Appointment Cancelled"})
}

func (h *AdminHandler) Orders(c *gin.Context) {
	orders, err := h.OrderService.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"orders": orders})
}

type orderStatusUpdate struct {
	OrderID string `json:"orderId" binding:"required"`
	models.UpdateOrderStatusRequest
}

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req orderStatusUpdate
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.OrderService.UpdateStatus(c.Request.Context(), req.OrderID, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Order status updated", "order": o})
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	dash, err := h.AdminService.Dashboard(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"dashData": dash})
}
