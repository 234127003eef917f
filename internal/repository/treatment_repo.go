package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Alxpy/backSistDent/internal/models"
)

type TreatmentRepository struct {
	coll *mongo.Collection
}

func NewTreatmentRepository(db *mongo.Database) *TreatmentRepository {
	return &TreatmentRepository{coll: db.Collection("treatments")}
}

func (r *TreatmentRepository) Insert(ctx context.Context, t *models.Treatment) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, t)
	return err
}

func (r *TreatmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Treatment, error) {
	var t models.Treatment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TreatmentRepository) List(ctx context.Context) ([]models.Treatment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	treatments := make([]models.Treatment, 0)
	if err := cursor.All(ctx, &treatments); err != nil {
		return nil, err
	}
	return treatments, nil
}

func (r *TreatmentRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Treatment, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Treatment
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TreatmentRepository) Deactivate(ctx context.Context, id primitive.ObjectID) (*models.Treatment, error) {
	return r.Update(ctx, id, bson.M{"isActive": false})
}

func (r *TreatmentRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
