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

type PatientRepository struct {
	coll *mongo.Collection
}

func NewPatientRepository(db *mongo.Database) *PatientRepository {
	return &PatientRepository{coll: db.Collection("patients")}
}

func (r *PatientRepository) Insert(ctx context.Context, p *models.Patient) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.MedicalRecords == nil {
		p.MedicalRecords = make([]models.MedicalRecord, 0)
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *PatientRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Patient, error) {
	var p models.Patient
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) FindByCI(ctx context.Context, ci string) (*models.Patient, error) {
	var p models.Patient
	if err := r.coll.FindOne(ctx, bson.M{"ci": ci}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns active patients sorted by name. Deactivated patients stay in
// the collection but are hidden from listings.
func (r *PatientRepository) List(ctx context.Context) ([]models.Patient, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	patients := make([]models.Patient, 0)
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Patient, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Patient
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Deactivate soft-deletes a patient.
func (r *PatientRepository) Deactivate(ctx context.Context, id primitive.ObjectID) (*models.Patient, error) {
	return r.Update(ctx, id, bson.M{"isActive": false})
}

func (r *PatientRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
