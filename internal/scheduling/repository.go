package scheduling

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Alxpy/backSistDent/internal/models"
)

// UpdateFields carries the mutable appointment fields persisted on update.
// EndTime is recomputed by the scheduler, never taken from the client.
type UpdateFields struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  int
	Notes     string
	Status    string
}

// Repository is the persistence collaborator the scheduling core talks to.
// Implementations return ErrNotFound when an id does not resolve.
type Repository interface {
	Insert(ctx context.Context, a *models.Appointment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)

	// FindConflicting returns any non-cancelled appointment for the dentist whose
	// stored interval overlaps iv, excluding excludeID when non-nil. A nil
	// appointment with a nil error means the slot is free.
	FindConflicting(ctx context.Context, dentistID primitive.ObjectID, iv Interval, excludeID *primitive.ObjectID) (*models.Appointment, error)

	Update(ctx context.Context, id primitive.ObjectID, fields UpdateFields) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Appointment, error)
}

// Notifier is the reminder collaborator. Implementations must not block the
// request path and may fail silently.
type Notifier interface {
	SendReminder(a *models.Appointment)
}
