package order

import (
	"context"
	"errors"
	"math"

	orderRepo "medlink/database/repository/order"
	"medlink/models"
	"medlink/utils"

	"go.uber.org/zap"
)

type OrderService interface {
	Create(ctx context.Context, patientID string, req models.CreateOrderRequest) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, patientID, orderID string, req models.UpdatePaymentStatusRequest) (*models.Order, error)
	ListMine(ctx context.Context, patientID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error)
}

type DefaultOrderService struct {
	Repo orderRepo.OrderRepository
}

// ItemsTotal sums price times quantity over items.
func ItemsTotal(items []models.OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func (s *DefaultOrderService) Create(ctx context.Context, patientID string, req models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, utils.NewError(utils.ErrValidation, "Order has no items")
	}
	for _, it := range req.Items {
		if it.Quantity <= 0 || it.Price < 0 {
			return nil, utils.NewError(utils.ErrValidation, "Invalid order item")
		}
	}
	// Amounts are money with two decimals.
	if math.Abs(ItemsTotal(req.Items)-req.TotalAmount) > 0.005 {
		return nil, utils.NewError(utils.ErrValidation, "Total amount does not match items")
	}

	o := &models.Order{
		ID:              utils.NewID(),
		PatientID:       patientID,
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		PaymentStatus:   models.PaymentPending,
		Status:          models.OrderPending,
	}
	if err := s.Repo.Create(ctx, o); err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to create order", err)
	}
	utils.GetLogger().Info("Order created", zap.String("orderID", o.ID), zap.Float64("total", o.TotalAmount))
	return o, nil
}

func (s *DefaultOrderService) load(ctx context.Context, orderID string) (*models.Order, error) {
	o, err := s.Repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.WrapError(utils.ErrNotFound, "Order not found", err)
		}
		return nil, utils.WrapError(utils.ErrInternal, "Failed to load order", err)
	}
	return o, nil
}

// UpdatePaymentStatus records the payment outcome; a completed payment moves
// a pending order into processing.
func (s *DefaultOrderService) UpdatePaymentStatus(ctx context.Context, patientID, orderID string, req models.UpdatePaymentStatusRequest) (*models.Order, error) {
	o, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.PatientID != patientID {
		return nil, utils.NewError(utils.ErrForbidden, "Unauthorized action")
	}

	upd := orderRepo.OrderUpdate{PaymentStatus: req.PaymentStatus, PaymentID: req.PaymentID}
	if req.PaymentStatus == models.PaymentCompleted && o.Status == models.OrderPending {
		upd.Status = models.OrderProcessing
	}
	return s.update(ctx, orderID, upd)
}

func (s *DefaultOrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	switch status {
	case models.OrderPending, models.OrderProcessing, models.OrderShipped, models.OrderDelivered, models.OrderCancelled:
	default:
		return nil, utils.NewError(utils.ErrValidation, "Invalid order status")
	}
	if _, err := s.load(ctx, orderID); err != nil {
		return nil, err
	}
	return s.update(ctx, orderID, orderRepo.OrderUpdate{Status: status})
}

func (s *DefaultOrderService) update(ctx context.Context, orderID string, upd orderRepo.OrderUpdate) (*models.Order, error) {
	o, err := s.Repo.Update(ctx, orderID, upd)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.WrapError(utils.ErrNotFound, "Order not found", err)
		}
		return nil, utils.WrapError(utils.ErrInternal, "Failed to update order", err)
	}
	return o, nil
}

func (s *DefaultOrderService) ListMine(ctx context.Context, patientID string) ([]models.Order, error) {
	out, err := s.Repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to load orders", err)
	}
	return out, nil
}

func (s *DefaultOrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	out, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to load orders", err)
	}
	return out, nil
}
