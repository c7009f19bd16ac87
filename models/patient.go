package models

import "time"

const (
	DefaultPatientImage = "https://res.cloudinary.com/medlink/image/upload/v1/defaults/profile.png"
	NotSelected         = "Not Selected"
)

type Patient struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	PasswordHash  string    `bson:"passwordHash,omitempty" json:"-"`
	GoogleID      string    `bson:"googleId,omitempty" json:"-"`
	Image         string    `bson:"image" json:"image"`
	ImagePublicID string    `bson:"imagePublicId,omitempty" json:"-"`
	Phone         string    `bson:"phone" json:"phone"`
	Address       Address   `bson:"address" json:"address"`
	Gender        string    `bson:"gender" json:"gender"`
	DateOfBirth   string    `bson:"dob" json:"dob"`
	FCMToken      string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PatientSnapshot is the copy of a patient's profile embedded in an appointment.
type PatientSnapshot struct {
	Name        string  `bson:"name" json:"name"`
	Email       string  `bson:"email" json:"email"`
	Image       string  `bson:"image" json:"image"`
	Phone       string  `bson:"phone" json:"phone"`
	Address     Address `bson:"address" json:"address"`
	Gender      string  `bson:"gender" json:"gender"`
	DateOfBirth string  `bson:"dob" json:"dob"`
}

func (p *Patient) Snapshot() PatientSnapshot {
	return PatientSnapshot{
		Name:        p.Name,
		Email:       p.Email,
		Image:       p.Image,
		Phone:       p.Phone,
		Address:     p.Address,
		Gender:      p.Gender,
		DateOfBirth: p.DateOfBirth,
	}
}

type RegisterPatientRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdatePatientProfileRequest is bound from a multipart form so an image can
// travel with it.
type UpdatePatientProfileRequest struct {
	Name        string `form:"name" binding:"required"`
	Phone       string `form:"phone" binding:"required"`
	DateOfBirth string `form:"dob" binding:"required"`
	Gender      string `form:"gender"`
	Address     string `form:"address"`
	FCMToken    string `form:"fcmToken"`
}

// PatientProfileUpdate carries the fields a profile update writes. Empty
// image fields leave the stored image untouched.
type PatientProfileUpdate struct {
	Name          string
	Phone         string
	DateOfBirth   string
	Gender        string
	Address       *Address
	Image         string
	ImagePublicID string
	FCMToken      string
}
