package models

import "time"

const (
	StatusCancelled = "Cancelled"
	StatusCompleted = "Completed"
	StatusUpcoming  = "Upcoming"
)

// Appointment is one booking. The doctor and patient snapshots are written
// once at creation and never updated. Cancelled, IsCompleted and Payment only
// ever move from false to true.
type Appointment struct {
	ID          string          `bson:"id" json:"id"`
	PatientID   string          `bson:"patientId" json:"patientId"`
	DoctorID    string          `bson:"doctorId" json:"doctorId"`
	PatientData PatientSnapshot `bson:"patientData" json:"patientData"`
	DoctorData  DoctorSnapshot  `bson:"doctorData" json:"doctorData"`
	SlotDate    string          `bson:"slotDate" json:"slotDate"`
	SlotTime    string          `bson:"slotTime" json:"slotTime"`
	Amount      float64         `bson:"amount" json:"amount"`
	Date        time.Time       `bson:"date" json:"date"`

	Cancelled   bool       `bson:"cancel" json:"cancel"`
	CancelledBy Role       `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CancelledAt *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`

	IsCompleted bool       `bson:"isCompleted" json:"isCompleted"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	Payment         bool       `bson:"payment" json:"payment"`
	PaymentProvider string     `bson:"paymentProvider,omitempty" json:"paymentProvider,omitempty"`
	PaymentRef      string     `bson:"paymentRef,omitempty" json:"paymentRef,omitempty"`
	PaidAt          *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}

// Status is the display status used by dashboards and analytics.
func (a *Appointment) Status() string {
	switch {
	case a.Cancelled:
		return StatusCancelled
	case a.IsCompleted:
		return StatusCompleted
	default:
		return StatusUpcoming
	}
}

type BookAppointmentRequest struct {
	DoctorID string `json:"docId" binding:"required"`
	SlotDate string `json:"slotDate" binding:"required,slotdate"`
	SlotTime string `json:"slotTime" binding:"required,slottime"`
}

type AppointmentIDRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
}

// PaymentConfirmation names the provider-side object that proves payment.
type PaymentConfirmation struct {
	Provider  string `json:"provider" binding:"required,oneof=paypal stripe"`
	Reference string `json:"reference" binding:"required"`
}

type VerifyPaymentRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	PaymentConfirmation
}

// PayPalVerifyRequest keeps the PayPal-only payload shape used by the web client.
type PayPalVerifyRequest struct {
	OrderID       string `json:"orderID" binding:"required"`
	AppointmentID string `json:"appointmentId" binding:"required"`
}
