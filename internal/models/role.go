package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role names seeded at startup.
const (
	RoleAdmin     = "admin"
	RoleDentist   = "dentist"
	RoleAssistant = "assistant"
	RolePatient   = "patient"
)

type Role struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
