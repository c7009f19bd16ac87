package models

import "time"

// Doctor is a bookable practitioner. SlotsBooked is only mutated through the
// repository's atomic reserve/release operations.
type Doctor struct {
	ID             string      `bson:"id" json:"id"`
	Name           string      `bson:"name" json:"name"`
	Email          string      `bson:"email" json:"email"`
	PasswordHash   string      `bson:"passwordHash" json:"-"`
	Image          string      `bson:"image" json:"image"`
	ImagePublicID  string      `bson:"imagePublicId,omitempty" json:"-"`
	Specialization string      `bson:"specialization" json:"specialization"`
	Degree         string      `bson:"degree" json:"degree"`
	Experience     string      `bson:"experience" json:"experience"`
	About          string      `bson:"about" json:"about"`
	Available      bool        `bson:"available" json:"available"`
	Fees           float64     `bson:"fees" json:"fees"`
	Address        Address     `bson:"address" json:"address"`
	SlotsBooked    SlotsBooked `bson:"slotsBooked" json:"slotsBooked"`
	CreatedAt      time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// DoctorSnapshot is the copy of a doctor's profile embedded in an appointment.
type DoctorSnapshot struct {
	Name           string  `bson:"name" json:"name"`
	Email          string  `bson:"email" json:"email"`
	Image          string  `bson:"image" json:"image"`
	Specialization string  `bson:"specialization" json:"specialization"`
	Degree         string  `bson:"degree" json:"degree"`
	Experience     string  `bson:"experience" json:"experience"`
	About          string  `bson:"about" json:"about"`
	Fees           float64 `bson:"fees" json:"fees"`
	Address        Address `bson:"address" json:"address"`
}

func (d *Doctor) Snapshot() DoctorSnapshot {
	return DoctorSnapshot{
		Name:           d.Name,
		Email:          d.Email,
		Image:          d.Image,
		Specialization: d.Specialization,
		Degree:         d.Degree,
		Experience:     d.Experience,
		About:          d.About,
		Fees:           d.Fees,
		Address:        d.Address,
	}
}

// PublicDoctor is the listing view; it omits contact and booking internals.
type PublicDoctor struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Image          string  `json:"image"`
	Specialization string  `json:"specialization"`
	Degree         string  `json:"degree"`
	Experience     string  `json:"experience"`
	About          string  `json:"about"`
	Available      bool    `json:"available"`
	Fees           float64 `json:"fees"`
	Address        Address `json:"address"`
}

func (d *Doctor) Public() PublicDoctor {
	return PublicDoctor{
		ID:             d.ID,
		Name:           d.Name,
		Image:          d.Image,
		Specialization: d.Specialization,
		Degree:         d.Degree,
		Experience:     d.Experience,
		About:          d.About,
		Available:      d.Available,
		Fees:           d.Fees,
		Address:        d.Address,
	}
}

// AddDoctorRequest is bound from the multipart form an admin submits.
type AddDoctorRequest struct {
	Name           string  `form:"name" binding:"required"`
	Email          string  `form:"email" binding:"required,email"`
	Password       string  `form:"password" binding:"required,min=8"`
	Specialization string  `form:"specialization" binding:"required"`
	Degree         string  `form:"degree" binding:"required"`
	Experience     string  `form:"experience" binding:"required"`
	About          string  `form:"about" binding:"required"`
	Fees           float64 `form:"fees" binding:"required,gt=0"`
	// Address arrives as a JSON object encoded in a form field.
	Address string `form:"address" binding:"required"`
}

type UpdateDoctorProfileRequest struct {
	Fees      *float64 `json:"fees" binding:"omitempty,gt=0"`
	Address   *Address `json:"address"`
	Available *bool    `json:"available"`
	About     *string  `json:"about"`
}

type DoctorIDRequest struct {
	DoctorID string `json:"docId" binding:"required"`
}
