package handlers

import (
	"medlink/middleware"
	"medlink/models"
	"medlink/services/order"
	"medlink/utils"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	OrderService order.OrderService
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req models.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.OrderService.Create(c.Request.Context(), middleware.AccountID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Order placed", "order": o})
}

type paymentStatusUpdate struct {
	OrderID string `json:"orderId" binding:"required"`
	models.UpdatePaymentStatusRequest
}

func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	var req paymentStatusUpdate
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.OrderService.UpdatePaymentStatus(c.Request.Context(), middleware.AccountID(c), req.OrderID, req.UpdatePaymentStatusRequest)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"message": "Payment status updated", "order": o})
}

func (h *OrderHandler) Mine(c *gin.Context) {
	orders, err := h.OrderService.ListMine(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ok(c, gin.H{"orders": orders})
}
