package models

import "time"

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"

	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

type OrderItem struct {
	MedicineID string  `bson:"medicineId" json:"medicineId"`
	Name       string  `bson:"name" json:"name" binding:"required"`
	Quantity   int     `bson:"quantity" json:"quantity" binding:"required,gt=0"`
	Price      float64 `bson:"price" json:"price" binding:"gte=0"`
}

type ShippingAddress struct {
	FullName   string `bson:"fullName" json:"fullName" binding:"required"`
	Street     string `bson:"street" json:"street" binding:"required"`
	City       string `bson:"city" json:"city" binding:"required"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
	Phone      string `bson:"phone" json:"phone"`
}

type Order struct {
	ID              string          `bson:"id" json:"id"`
	PatientID       string          `bson:"patientId" json:"patientId"`
	Items           []OrderItem     `bson:"items" json:"items"`
	TotalAmount     float64         `bson:"totalAmount" json:"totalAmount"`
	PaymentMethod   string          `bson:"paymentMethod" json:"paymentMethod"`
	ShippingAddress ShippingAddress `bson:"shippingAddress" json:"shippingAddress"`
	PaymentStatus   string          `bson:"paymentStatus" json:"paymentStatus"`
	PaymentID       string          `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Status          string          `bson:"status" json:"status"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updatedAt" json:"updatedAt"`
}

type CreateOrderRequest struct {
	Items           []OrderItem     `json:"items" binding:"required,min=1,dive"`
	TotalAmount     float64         `json:"totalAmount" binding:"gt=0"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required,oneof=paypal stripe cod"`
	ShippingAddress ShippingAddress `json:"shippingAddress" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required,oneof=pending completed failed"`
	PaymentID     string `json:"paymentId"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}
