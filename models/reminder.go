package models

// ReminderPayload is the body of an appointment reminder task.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	PatientID     string `json:"patientId"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}

type SymptomCheckRequest struct {
	Symptoms string `form:"symptoms" json:"symptoms"`
}

type SymptomCheckResponse struct {
	Analysis   string `json:"analysis"`
	Transcript string `json:"transcript,omitempty"`
	Disclaimer string `json:"disclaimer"`
}
