package models

// Role tags which kind of account a token or request belongs to.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// Address is the two-line postal address shared by patients and doctors.
type Address struct {
	Line1 string `bson:"line1" json:"line1"`
	Line2 string `bson:"line2" json:"line2"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// AuthResponse is returned by every login and registration endpoint.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Account is the minimal identity the auth middleware needs to confirm a
// token subject still exists.
type Account struct {
	ID    string `bson:"id" json:"id"`
	Email string `bson:"email" json:"email"`
	Role  Role   `bson:"-" json:"role"`
}
