package models

import "time"

type BloodPressure struct {
	Systolic  int `bson:"systolic" json:"systolic" binding:"required,gt=0"`
	Diastolic int `bson:"diastolic" json:"diastolic" binding:"required,gt=0"`
}

type VitalSigns struct {
	ID            string        `bson:"id" json:"id"`
	PatientID     string        `bson:"patientId" json:"patientId"`
	Date          time.Time     `bson:"date" json:"date"`
	BloodPressure BloodPressure `bson:"bloodPressure" json:"bloodPressure"`
	HeartRate     int           `bson:"heartRate" json:"heartRate"`
	BloodSugar    float64       `bson:"bloodSugar" json:"bloodSugar"`
	Notes         string        `bson:"notes,omitempty" json:"notes,omitempty"`
}

type RecordVitalsRequest struct {
	BloodPressure BloodPressure `json:"bloodPressure" binding:"required"`
	HeartRate     int           `json:"heartRate" binding:"required,gt=0"`
	BloodSugar    float64       `json:"bloodSugar" binding:"required,gt=0"`
	Notes         string        `json:"notes"`
	Date          *time.Time    `json:"date"`
}

type Medication struct {
	ID         string     `bson:"id" json:"id"`
	PatientID  string     `bson:"patientId" json:"patientId"`
	Name       string     `bson:"name" json:"name"`
	Dosage     string     `bson:"dosage" json:"dosage"`
	Frequency  string     `bson:"frequency" json:"frequency"`
	StartDate  time.Time  `bson:"startDate" json:"startDate"`
	EndDate    *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	TakenCount int        `bson:"takenCount" json:"takenCount"`
	TotalCount int        `bson:"totalCount" json:"totalCount"`
	Notes      string     `bson:"notes,omitempty" json:"notes,omitempty"`
}

type AddMedicationRequest struct {
	Name       string     `json:"name" binding:"required"`
	Dosage     string     `json:"dosage" binding:"required"`
	Frequency  string     `json:"frequency" binding:"required"`
	StartDate  time.Time  `json:"startDate" binding:"required"`
	EndDate    *time.Time `json:"endDate"`
	TotalCount int        `json:"totalCount" binding:"required,gt=0"`
	Notes      string     `json:"notes"`
}

// VitalsHistory is the per-series view charted by the client.
type VitalsHistory struct {
	BloodPressure []BloodPressurePoint `json:"bloodPressure"`
	HeartRate     []HeartRatePoint     `json:"heartRate"`
	BloodSugar    []BloodSugarPoint    `json:"bloodSugar"`
}

type BloodPressurePoint struct {
	Date      string `json:"date"`
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
}

type HeartRatePoint struct {
	Date string `json:"date"`
	Rate int    `json:"rate"`
}

type BloodSugarPoint struct {
	Date  string  `json:"date"`
	Level float64 `json:"level"`
}

type UpcomingAppointment struct {
	ID         string `json:"id"`
	DoctorName string `json:"doctorName"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	Specialty  string `json:"specialty"`
}

// HealthAnalytics is the patient health overview.
type HealthAnalytics struct {
	VitalSigns           VitalsHistory         `json:"vitalSigns"`
	Medications          []Medication          `json:"medications"`
	UpcomingAppointments []UpcomingAppointment `json:"upcomingAppointments"`
}
