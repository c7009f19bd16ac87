package orderRepo

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

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	// Update applies set to the order and returns the updated document.
	Update(ctx context.Context, id string, set OrderUpdate) (*models.Order, error)
	Count(ctx context.Context) (int64, error)
}

// OrderUpdate lists the mutable order fields; empty strings are left alone.
type OrderUpdate struct {
	Status        string
	PaymentStatus string
	PaymentID     string
}

type mongoOrderRepo struct {
	coll *mongo.Collection
}

func NewMongoOrderRepo() OrderRepository {
	return &mongoOrderRepo{coll: database.DB().Collection("orders")}
}

func (r *mongoOrderRepo) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return database.InsertError(err, "order")
	}
	return nil
}

func (r *mongoOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var order models.Order
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&order); err != nil {
		return nil, database.NotFound(err, "order")
	}
	return &order, nil
}

func (r *mongoOrderRepo) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (r *mongoOrderRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Order, error) {
	return r.list(ctx, bson.M{"patientId": patientID})
}

func (r *mongoOrderRepo) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoOrderRepo) Update(ctx context.Context, id string, upd OrderUpdate) (*models.Order, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if upd.Status != "" {
		set["status"] = upd.Status
	}
	if upd.PaymentStatus != "" {
		set["paymentStatus"] = upd.PaymentStatus
	}
	if upd.PaymentID != "" {
		set["paymentId"] = upd.PaymentID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&order); err != nil {
		return nil, database.NotFound(err, "order")
	}
	return &order, nil
}

func (r *mongoOrderRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return n, nil
}

