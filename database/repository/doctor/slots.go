package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"medlink/database"
	"medlink/models"
	"medlink/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func slotField(date string) (string, error) {
	// The date becomes part of a field path, so it must never carry '.' or '$'.
	if !models.ValidSlotDate(date) {
		return "", fmt.Errorf("slot date %q: %w", date, utils.ErrValidation)
	}
	return "slotsBooked." + date, nil
}

func (r *MongoDoctorRepo) ReserveSlot(ctx context.Context, doctorID, date, slotTime string) error {
	field, err := slotField(date)
	if err != nil {
		return err
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{
		"id":        doctorID,
		"available": true,
		field:       bson.M{"$ne": slotTime},
	}
	update := bson.M{
		"$addToSet": bson.M{field: slotTime},
		"$set":      bson.M{"updatedAt": time.Now()},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reserve slot: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}
	return r.explainReserveMiss(ctx, doctorID, date, slotTime)
}

// explainReserveMiss reads the doctor back to tell the caller which
// precondition of ReserveSlot failed.
func (r *MongoDoctorRepo) explainReserveMiss(ctx context.Context, doctorID, date, slotTime string) error {
	var doc struct {
		Available   bool               `bson:"available"`
		SlotsBooked models.SlotsBooked `bson:"slotsBooked"`
	}
	projection := bson.M{"available": 1, "slotsBooked." + date: 1}
	if err := r.coll.FindOne(ctx, bson.M{"id": doctorID}, options.FindOne().SetProjection(projection)).Decode(&doc); err != nil {
		return database.NotFound(err, "doctor")
	}
	if !doc.Available {
		return fmt.Errorf("doctor %s: %w", doctorID, utils.ErrDoctorUnavailable)
	}
	return fmt.Errorf("%s %s: %w", date, slotTime, utils.ErrSlotConflict)
}

func (r *MongoDoctorRepo) ReleaseSlot(ctx context.Context, doctorID, date, slotTime string) error {
	field, err := slotField(date)
	if err != nil {
		return err
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{field: slotTime},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": doctorID}, update)
	if err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("doctor %s: %w", doctorID, utils.ErrNotFound)
	}
	return nil
}
