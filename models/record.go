package models

import "time"

const MedicalRecordsFolder = "medical-records"

type MedicalRecord struct {
	ID           string    `bson:"id" json:"id"`
	PatientID    string    `bson:"patientId" json:"patientId"`
	Name         string    `bson:"name" json:"name"`
	FileURL      string    `bson:"fileUrl" json:"fileUrl"`
	PublicID     string    `bson:"publicId" json:"-"`
	ResourceType string    `bson:"resourceType" json:"resourceType"`
	Format       string    `bson:"format" json:"format"`
	Size         int64     `bson:"size" json:"size"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

type RenameRecordRequest struct {
	Name string `json:"name" binding:"required"`
}
