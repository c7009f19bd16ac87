package patientRepo

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
	"go.uber.org/zap"
)

// MongoPatientRepo implements PatientRepository using MongoDB.
type MongoPatientRepo struct {
	coll *mongo.Collection
}

func NewMongoPatientRepo() PatientRepository {
	repo := &MongoPatientRepo{coll: database.DB().Collection("patients")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("patient indexes not created", zap.Error(err))
	}
	return repo
}

func (r *MongoPatientRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoPatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	patient.CreatedAt = now
	patient.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, patient); err != nil {
		return database.InsertError(err, "patient")
	}
	return nil
}

func (r *MongoPatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var patient models.Patient
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&patient); err != nil {
		return nil, database.NotFound(err, "patient")
	}
	return &patient, nil
}

func (r *MongoPatientRepo) GetByEmail(ctx context.Context, email string) (*models.Patient, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var patient models.Patient
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&patient)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient by email: %w", err)
	}
	return &patient, nil
}

func (r *MongoPatientRepo) UpdateProfile(ctx context.Context, id string, upd models.PatientProfileUpdate) (*models.Patient, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	set := bson.M{
		"name":      upd.Name,
		"phone":     upd.Phone,
		"dob":       upd.DateOfBirth,
		"updatedAt": time.Now(),
	}
	if upd.Gender != "" {
		set["gender"] = upd.Gender
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.Image != "" {
		set["image"] = upd.Image
		set["imagePublicId"] = upd.ImagePublicID
	}
	if upd.FCMToken != "" {
		set["fcmToken"] = upd.FCMToken
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var patient models.Patient
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&patient); err != nil {
		return nil, database.NotFound(err, "patient")
	}
	return &patient, nil
}

func (r *MongoPatientRepo) LinkGoogleAccount(ctx context.Context, id, googleID string) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"googleId": googleID, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to link google account: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("patient %s: %w", id, utils.ErrNotFound)
	}
	return nil
}

func (r *MongoPatientRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return n, nil
}
