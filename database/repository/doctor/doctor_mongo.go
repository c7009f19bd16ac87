package doctorRepo

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

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo creates a new instance of DoctorRepository using MongoDB.
func NewMongoDoctorRepo() DoctorRepository {
	repo := &MongoDoctorRepo{coll: database.DB().Collection("doctors")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("doctor indexes not created", zap.Error(err))
	}
	return repo
}

func (r *MongoDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now
	// A nil map is stored as null and $addToSet cannot create fields under null.
	if doctor.SlotsBooked == nil {
		doctor.SlotsBooked = models.SlotsBooked{}
	}

	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		return database.InsertError(err, "doctor")
	}
	return nil
}

func (r *MongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doctor); err != nil {
		return nil, database.NotFound(err, "doctor")
	}
	return &doctor, nil
}

func (r *MongoDoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var doctor models.Doctor
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor by email: %w", err)
	}
	return &doctor, nil
}

func (r *MongoDoctorRepo) List(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"passwordHash": 0})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	doctors := []models.Doctor{}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}

func (r *MongoDoctorRepo) UpdateProfile(ctx context.Context, id string, req models.UpdateDoctorProfileRequest) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if req.Fees != nil {
		set["fees"] = *req.Fees
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.Available != nil {
		set["available"] = *req.Available
	}
	if req.About != nil {
		set["about"] = *req.About
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("doctor %s: %w", id, utils.ErrNotFound)
	}
	return nil
}

func (r *MongoDoctorRepo) ToggleAvailability(ctx context.Context, id string) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "available", Value: bson.D{{Key: "$not", Value: bson.A{"$available"}}}},
			{Key: "updatedAt", Value: "$$NOW"},
		}}},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"available": 1})

	var out struct {
		Available bool `bson:"available"`
	}
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&out); err != nil {
		return false, database.NotFound(err, "doctor")
	}
	return out.Available, nil
}

func (r *MongoDoctorRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return n, nil
}
