package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Alxpy/backSistDent/internal/models"
)

type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection("roles")}
}

func (r *RoleRepository) Insert(ctx context.Context, role *models.Role) error {
	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
	}
	now := time.Now()
	role.CreatedAt = now
	role.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, role)
	return err
}

func (r *RoleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Role, error) {
	var role models.Role
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&role); err != nil {
		return nil, err
	}
	return &role, nil
}
