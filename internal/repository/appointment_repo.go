package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Alxpy/backSistDent/internal/models"
	"github.com/Alxpy/backSistDent/internal/scheduling"
)

// AppointmentRepository persists appointments in the "appointments"
// collection. It implements scheduling.Repository.
type AppointmentRepository struct {
	coll *mongo.Collection
}

var _ scheduling.Repository = (*AppointmentRepository)(nil)

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{coll: db.Collection("appointments")}
}

func (r *AppointmentRepository) Insert(ctx context.Context, a *models.Appointment) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, a)
	return err
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	var a models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, scheduling.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindConflicting looks for any active appointment of the dentist whose
// half-open interval overlaps iv. The overlap test runs as a native range
// filter: storedStart < candidateEnd AND storedEnd > candidateStart, so
// touching endpoints never match.
func (r *AppointmentRepository) FindConflicting(ctx context.Context, dentistID primitive.ObjectID, iv scheduling.Interval, excludeID *primitive.ObjectID) (*models.Appointment, error) {
	filter := bson.M{
		"dentist":   dentistID,
		"status":    bson.M{"$ne": models.StatusCancelled},
		"startTime": bson.M{"$lt": iv.End},
		"endTime":   bson.M{"$gt": iv.Start},
	}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}

	var a models.Appointment
	err := r.coll.FindOne(ctx, filter).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, id primitive.ObjectID, fields scheduling.UpdateFields) (*models.Appointment, error) {
	update := bson.M{"$set": bson.M{
		"startTime": fields.StartTime,
		"endTime":   fields.EndTime,
		"duration":  fields.Duration,
		"notes":     fields.Notes,
		"status":    fields.Status,
		"updatedAt": time.Now(),
	}}
	return r.findOneAndUpdate(ctx, id, update)
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Appointment, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	return r.findOneAndUpdate(ctx, id, update)
}

// MarkReminderSent flips the reminderSent flag after the notification
// collaborator fires.
func (r *AppointmentRepository) MarkReminderSent(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"reminderSent": true, "updatedAt": time.Now()}})
	return err
}

func (r *AppointmentRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Appointment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a models.Appointment
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, scheduling.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns appointments sorted by start time, optionally filtered by
// dentist and status.
func (r *AppointmentRepository) List(ctx context.Context, dentistID *primitive.ObjectID, status string) ([]models.Appointment, error) {
	filter := bson.M{}
	if dentistID != nil {
		filter["dentist"] = *dentistID
	}
	if status != "" {
		filter["status"] = status
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// Delete removes the appointment document outright and returns it. Cancel
// keeps the document around; this exists for administrative cleanup.
func (r *AppointmentRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	var a models.Appointment
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, scheduling.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
