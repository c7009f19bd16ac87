package appointmentRepo

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

func (r *MongoAppointmentRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return n, nil
}

func (r *MongoAppointmentRepo) CountByMonthSince(ctx context.Context, since time.Time) (map[string]int, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$date"}},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate appointment trends: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Month string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode appointment trends: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Month] = row.Count
	}
	return out, nil
}

func (r *MongoAppointmentRepo) Recent(ctx context.Context, limit int64) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(limit))
}
