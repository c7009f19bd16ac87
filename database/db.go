package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medlink/config"
	"medlink/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// OpTimeout bounds a single repository call.
const OpTimeout = 5 * time.Second

// InitDB initializes the MongoDB connection.
func InitDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	MongoClient = client
	utils.GetLogger().Info("Connected to MongoDB", zap.String("database", config.AppConfig.DatabaseName))
	return nil
}

// DB returns the application database.
func DB() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// Ping reports whether the database is reachable.
func Ping(ctx context.Context) error {
	if MongoClient == nil {
		return errors.New("database not initialized")
	}
	return MongoClient.Ping(ctx, nil)
}

func Close(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}

// WithTimeout derives a context bounded by OpTimeout.
func WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, OpTimeout)
}

// NotFound converts mongo.ErrNoDocuments into utils.ErrNotFound and wraps
// anything else.
func NotFound(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", what, utils.ErrNotFound)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

// InsertError maps duplicate-key failures to utils.ErrConflict.
func InsertError(err error, what string) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s already exists: %w", what, utils.ErrConflict)
	}
	return fmt.Errorf("failed to create %s: %w", what, err)
}
