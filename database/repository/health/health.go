package healthRepo

import (
	"context"
	"fmt"
	"time"

	"medlink/database"
	"medlink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HealthRepository stores vital-sign readings and medications.
type HealthRepository interface {
	AddVitals(ctx context.Context, v *models.VitalSigns) error
	// VitalsSince returns readings taken at or after since, oldest first.
	VitalsSince(ctx context.Context, patientID string, since time.Time) ([]models.VitalSigns, error)
	AddMedication(ctx context.Context, m *models.Medication) error
	// Medications returns a patient's medications, latest start date first.
	Medications(ctx context.Context, patientID string) ([]models.Medication, error)
}

type mongoHealthRepo struct {
	vitals      *mongo.Collection
	medications *mongo.Collection
}

func NewMongoHealthRepo() HealthRepository {
	db := database.DB()
	return &mongoHealthRepo{
		vitals:      db.Collection("vital_signs"),
		medications: db.Collection("medications"),
	}
}

func (r *mongoHealthRepo) AddVitals(ctx context.Context, v *models.VitalSigns) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	if _, err := r.vitals.InsertOne(ctx, v); err != nil {
		return database.InsertError(err, "vital signs")
	}
	return nil
}

func (r *mongoHealthRepo) VitalsSince(ctx context.Context, patientID string, since time.Time) ([]models.VitalSigns, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{"patientId": patientID, "date": bson.M{"$gte": since}}
	cursor, err := r.vitals.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query vital signs: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.VitalSigns{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode vital signs: %w", err)
	}
	return out, nil
}

func (r *mongoHealthRepo) AddMedication(ctx context.Context, m *models.Medication) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	if _, err := r.medications.InsertOne(ctx, m); err != nil {
		return database.InsertError(err, "medication")
	}
	return nil
}

func (r *mongoHealthRepo) Medications(ctx context.Context, patientID string) ([]models.Medication, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})
	cursor, err := r.medications.Find(ctx, bson.M{"patientId": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query medications: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Medication{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode medications: %w", err)
	}
	return out, nil
}
