package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment statuses. Scheduled is the only non-terminal state.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

type Appointment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID    primitive.ObjectID `bson:"patient" json:"patient"`
	DentistID    primitive.ObjectID `bson:"dentist" json:"dentist"`
	TreatmentID  primitive.ObjectID `bson:"treatment,omitempty" json:"treatment,omitempty"`
	StartTime    time.Time          `bson:"startTime" json:"startTime"`
	Duration     int                `bson:"duration" json:"duration"` // minutes
	EndTime      time.Time          `bson:"endTime" json:"endTime"`   // always startTime + duration
	Status       string             `bson:"status" json:"status"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	ReminderSent bool               `bson:"reminderSent" json:"reminderSent"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsValidStatus reports whether s is one of the known appointment statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}
