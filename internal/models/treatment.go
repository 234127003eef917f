package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Treatment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"` // URL
	Price       float64            `bson:"price" json:"price"`
	Duration    int                `bson:"duration" json:"duration"` // minutes
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
