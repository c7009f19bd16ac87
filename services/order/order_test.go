package order

import (
	"context"
	"errors"
	"fmt"
	"testing"

	orderRepo "medlink/database/repository/order"
	"medlink/models"
	"medlink/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	utils.SetLogger(zap.NewNop())
}

type memOrders struct {
	byID map[string]*models.Order
}

func (m *memOrders) Create(_ context.Context, o *models.Order) error {
	cp := *o
	m.byID[o.ID] = &cp
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (*models.Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("order: %w", utils.ErrNotFound)
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) ListByPatient(_ context.Context, patientID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.byID {
		if o.PatientID == patientID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memOrders) ListAll(context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.byID {
		out = append(out, *o)
	}
	return out, nil
}

func (m *memOrders) Update(_ context.Context, id string, upd orderRepo.OrderUpdate) (*models.Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("order: %w", utils.ErrNotFound)
	}
	if upd.Status != "" {
		o.Status = upd.Status
	}
	if upd.PaymentStatus != "" {
		o.PaymentStatus = upd.PaymentStatus
	}
	if upd.PaymentID != "" {
		o.PaymentID = upd.PaymentID
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) Count(context.Context) (int64, error) { return int64(len(m.byID)), nil }

func validRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		Items: []models.OrderItem{
			{Name: "Paracetamol", Quantity: 2, Price: 3.25},
			{Name: "Bandage", Quantity: 1, Price: 4.10},
		},
		TotalAmount:     10.60,
		PaymentMethod:   "paypal",
		ShippingAddress: models.ShippingAddress{FullName: "Pat", Street: "1 Main", City: "Town"},
	}
}

func TestCreateChecksTotal(t *testing.T) {
	svc := &DefaultOrderService{Repo: &memOrders{byID: map[string]*models.Order{}}}
	ctx := context.Background()

	o, err := svc.Create(ctx, "P", validRequest())
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, models.PaymentPending, o.PaymentStatus)

	bad := validRequest()
	bad.TotalAmount = 9.99
	_, err = svc.Create(ctx, "P", bad)
	assert.True(t, errors.Is(err, utils.ErrValidation))

	empty := validRequest()
	empty.Items = nil
	_, err = svc.Create(ctx, "P", empty)
	assert.True(t, errors.Is(err, utils.ErrValidation))
}

func TestPaymentCompletedMovesToProcessing(t *testing.T) {
	svc := &DefaultOrderService{Repo: &memOrders{byID: map[string]*models.Order{}}}
	ctx := context.Background()
	o, err := svc.Create(ctx, "P", validRequest())
	require.NoError(t, err)

	_, err = svc.UpdatePaymentStatus(ctx, "Q", o.ID, models.UpdatePaymentStatusRequest{PaymentStatus: models.PaymentCompleted})
	assert.True(t, errors.Is(err, utils.ErrForbidden))

	updated, err := svc.UpdatePaymentStatus(ctx, "P", o.ID, models.UpdatePaymentStatusRequest{PaymentStatus: models.PaymentCompleted, PaymentID: "PAY-1"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, updated.Status)
	assert.Equal(t, "PAY-1", updated.PaymentID)

	shipped, err := svc.UpdateStatus(ctx, o.ID, models.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, shipped.Status)

	_, err = svc.UpdateStatus(ctx, o.ID, "lost")
	assert.True(t, errors.Is(err, utils.ErrValidation))
	_, err = svc.UpdateStatus(ctx, "missing", models.OrderShipped)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestFailedPaymentKeepsStatus(t *testing.T) {
	svc := &DefaultOrderService{Repo: &memOrders{byID: map[string]*models.Order{}}}
	ctx := context.Background()
	o, _ := svc.Create(ctx, "P", validRequest())

	updated, err := svc.UpdatePaymentStatus(ctx, "P", o.ID, models.UpdatePaymentStatusRequest{PaymentStatus: models.PaymentFailed})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, updated.Status)
	assert.Equal(t, models.PaymentFailed, updated.PaymentStatus)
}
