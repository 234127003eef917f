package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	City   string `bson:"city" json:"city"`
	Zone   string `bson:"zone,omitempty" json:"zone,omitempty"`
	Street string `bson:"street,omitempty" json:"street,omitempty"`
}

// MedicalRecord is an embedded clinical note on a patient document.
// Types: allergy, chronic_disease, surgery, medication, other.
type MedicalRecord struct {
	Type     string `bson:"type" json:"type"`
	Name     string `bson:"name" json:"name"`
	Severity string `bson:"severity" json:"severity"` // low, medium, high
	Notes    string `bson:"notes,omitempty" json:"notes,omitempty"`
}

type Patient struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	CI             string             `bson:"ci" json:"ci"`
	BirthDate      *time.Time         `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	Gender         string             `bson:"gender" json:"gender"` // male, female, other, unspecified
	Phone          string             `bson:"phone" json:"phone"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	Address        *Address           `bson:"address,omitempty" json:"address,omitempty"`
	MedicalRecords []MedicalRecord    `bson:"medicalRecords" json:"medicalRecords"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
