package handlers

import (
	"medlink/middleware"
	"medlink/models"
	"medlink/services/booking"
	"medlink/services/health"
	"medlink/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	HealthService  health.HealthService
	BookingService booking.BookingService
}

func (h *HealthHandler) Analytics(c *gin.Context) {
	a, err := h.HealthService.Analytics(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"data": a})
}

func (h *HealthHandler) RecordVitals(c *gin.Context) {
	var req models.RecordVitalsRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.HealthService.RecordVitals(c.Request.Context(), middleware.AccountID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Vital signs recorded", "data": v})
}

func (h *HealthHandler) AddMedication(c *gin.Context) {
	var req models.AddMedicationRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.HealthService.AddMedication(c.Request.Context(), middleware.AccountID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Medication added", "data": m})
}

// Appointments is the health dashboard's booking list; it reuses the patient listing.
func (h *HealthHandler) Appointments(c *gin.Context) {
	appts, err := h.BookingService.ListForPatient(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"data": appts})
}
