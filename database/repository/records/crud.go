package recordsRepo

import (
	"context"
	"fmt"
	"time"

	"medlink/database"
	"medlink/models"
	"medlink/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a MedicalRecordRepository backed by MongoDB.
func NewMongoRecordRepo() MedicalRecordRepository {
	return &mongoRecordRepo{coll: database.DB().Collection("medical_records")}
}

func (r *mongoRecordRepo) Create(ctx context.Context, record *models.MedicalRecord) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return database.InsertError(err, "medical record")
	}
	return nil
}

func (r *mongoRecordRepo) GetByID(ctx context.Context, id string) (*models.MedicalRecord, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var record models.MedicalRecord
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record); err != nil {
		return nil, database.NotFound(err, "medical record")
	}
	return &record, nil
}

func (r *mongoRecordRepo) ListByPatient(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"patientId": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query medical records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.MedicalRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode medical records: %w", err)
	}
	return records, nil
}

func (r *mongoRecordRepo) Rename(ctx context.Context, id, name string) (*models.MedicalRecord, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"name": name, "updatedAt": time.Now()}}
	var record models.MedicalRecord
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&record); err != nil {
		return nil, database.NotFound(err, "medical record")
	}
	return &record, nil
}

func (r *mongoRecordRepo) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete medical record: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("medical record %s: %w", id, utils.ErrNotFound)
	}
	return nil
}
