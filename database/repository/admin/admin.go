package adminRepo

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

// AdminRepository defines data access for administrator accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	// GetByEmail returns nil, nil when no admin has the email.
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}

type MongoAdminRepo struct {
	coll *mongo.Collection
}

func NewMongoAdminRepo() AdminRepository {
	repo := &MongoAdminRepo{coll: database.DB().Collection("admins")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		utils.GetLogger().Warn("admin indexes not created", zap.Error(err))
	}
	return repo
}

func (r *MongoAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	admin.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		return database.InsertError(err, "admin")
	}
	return nil
}

func (r *MongoAdminRepo) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var admin models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&admin); err != nil {
		return nil, database.NotFound(err, "admin")
	}
	return &admin, nil
}

func (r *MongoAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var admin models.Admin
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}
	return &admin, nil
}
