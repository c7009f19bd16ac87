package messageRepo

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

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	// Conversation returns the messages exchanged by a and b, oldest first.
	Conversation(ctx context.Context, a, b string) ([]models.Message, error)
	// MarkRead marks every unread message from sender to receiver as read.
	MarkRead(ctx context.Context, senderID, receiverID string) (int64, error)
	// Conversations returns one summary per counterpart of userID, most
	// recent conversation first.
	Conversations(ctx context.Context, userID string) ([]models.ConversationSummary, error)
}

type mongoMessageRepo struct {
	coll *mongo.Collection
}

func NewMongoMessageRepo() MessageRepository {
	repo := &mongoMessageRepo{coll: database.DB().Collection("messages")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "senderId", Value: 1}, {Key: "receiverId", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "receiverId", Value: 1}, {Key: "read", Value: 1}}},
	})
	if err != nil {
		utils.GetLogger().Warn("message indexes not created", zap.Error(err))
	}
	return repo
}

func (r *mongoMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return database.InsertError(err, "message")
	}
	return nil
}

func (r *mongoMessageRepo) Conversation(ctx context.Context, a, b string) ([]models.Message, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"senderId": a, "receiverId": b},
		bson.M{"senderId": b, "receiverId": a},
	}}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}
	defer cursor.Close(ctx)

	msgs := []models.Message{}
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode conversation: %w", err)
	}
	return msgs, nil
}

func (r *mongoMessageRepo) MarkRead(ctx context.Context, senderID, receiverID string) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"senderId": senderID, "receiverId": receiverID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *mongoMessageRepo) Conversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	unread := bson.M{"$cond": bson.A{
		bson.M{"$and": bson.A{
			bson.M{"$eq": bson.A{"$receiverId", userID}},
			bson.M{"$eq": bson.A{"$read", false}},
		}},
		1, 0,
	}}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{bson.M{"senderId": userID}, bson.M{"receiverId": userID}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":         bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$senderId", userID}}, "$receiverId", "$senderId"}},
			"lastMessage": bson.M{"$first": "$$ROOT"},
			"unreadCount": bson.M{"$sum": unread},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "lastMessage.createdAt", Value: -1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate conversations: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.ConversationSummary{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %w", err)
	}
	return out, nil
}
