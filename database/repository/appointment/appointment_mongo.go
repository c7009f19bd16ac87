package appointmentRepo

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

type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{coll: database.DB().Collection("appointments")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("appointment indexes not created", zap.Error(err))
	}
	return repo
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_appointment_id")},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "date", Value: -1}}, Options: options.Index().SetName("idx_patient_date")},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "date", Value: -1}}, Options: options.Index().SetName("idx_doctor_date")},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "slotDate", Value: 1}}, Options: options.Index().SetName("idx_patient_slotdate")},
		// One provider confirmation pays for one appointment.
		{
			Keys: bson.D{{Key: "paymentProvider", Value: 1}, {Key: "paymentRef", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_payment_ref").
				SetPartialFilterExpression(bson.M{"paymentRef": bson.M{"$type": "string"}}),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return database.InsertError(err, "appointment")
	}
	return nil
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		return nil, database.NotFound(err, "appointment")
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
}

func (r *MongoAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"patientId": patientID}, newestFirst())
}

func (r *MongoAppointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID}, newestFirst())
}

func (r *MongoAppointmentRepo) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{}, newestFirst())
}

func (r *MongoAppointmentRepo) ListUpcomingForPatient(ctx context.Context, patientID, fromDate, toDate string) ([]models.Appointment, error) {
	filter := bson.M{
		"patientId": patientID,
		"cancel":    false,
		"slotDate":  bson.M{"$gte": fromDate, "$lte": toDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "slotDate", Value: 1}, {Key: "slotTime", Value: 1}})
	return r.find(ctx, filter, opts)
}

// openFilter matches an appointment that is still in the Booked state.
func openFilter(id string) bson.M {
	return bson.M{"id": id, "cancel": false, "isCompleted": false}
}

func (r *MongoAppointmentRepo) MarkCancelled(ctx context.Context, id string, by models.Role, at time.Time) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"cancel": true, "cancelledBy": by, "cancelledAt": at}}
	res, err := r.coll.UpdateOne(ctx, openFilter(id), update)
	if err != nil {
		return false, fmt.Errorf("failed to cancel appointment: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *MongoAppointmentRepo) MarkCompleted(ctx context.Context, id string, at time.Time) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"isCompleted": true, "completedAt": at}}
	res, err := r.coll.UpdateOne(ctx, openFilter(id), update)
	if err != nil {
		return false, fmt.Errorf("failed to complete appointment: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *MongoAppointmentRepo) MarkPaid(ctx context.Context, id, provider, reference string, at time.Time) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"payment":         true,
		"paymentProvider": provider,
		"paymentRef":      reference,
		"paidAt":          at,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("payment %s/%s already applied: %w", provider, reference, utils.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to mark appointment paid: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("appointment %s: %w", id, utils.ErrNotFound)
	}
	return nil
}
