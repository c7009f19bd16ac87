package models

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type UserDistribution struct {
	Patients int64 `json:"patients"`
	Doctors  int64 `json:"doctors"`
}

type RecentActivity struct {
	ID          string `json:"id"`
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
	SlotDate    string `json:"slotDate"`
	SlotTime    string `json:"slotTime"`
	Status      string `json:"status"`
}

type Dashboard struct {
	Doctors           int64            `json:"doctors"`
	Patients          int64            `json:"patients"`
	Appointments      int64            `json:"appointments"`
	Orders            int64            `json:"orders"`
	AppointmentTrends []MonthCount     `json:"appointmentTrends"`
	UserDistribution  UserDistribution `json:"userDistribution"`
	RecentActivity    []RecentActivity `json:"recentActivity"`
}
