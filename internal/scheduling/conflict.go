package scheduling

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConflictResolver answers whether a candidate slot collides with an active
// appointment already on a dentist's calendar. Cancelled appointments free
// their slot and are never considered.
type ConflictResolver struct {
	repo Repository
}

func NewConflictResolver(repo Repository) *ConflictResolver {
	return &ConflictResolver{repo: repo}
}

// FindConflict returns a *ConflictError carrying the blocking interval when
// the candidate overlaps an active appointment for the dentist, or nil when
// the slot is free. On update the appointment being moved is excluded by id so
// it cannot conflict with itself. Read-only; detection of one conflict is
// enough, the resolver does not enumerate all of them.
func (r *ConflictResolver) FindConflict(ctx context.Context, dentistID primitive.ObjectID, candidate Interval, excludeID *primitive.ObjectID) (*ConflictError, error) {
	blocking, err := r.repo.FindConflicting(ctx, dentistID, candidate, excludeID)
	if err != nil {
		return nil, fmt.Errorf("querying dentist schedule: %w", err)
	}
	if blocking == nil {
		return nil, nil
	}
	return &ConflictError{Start: blocking.StartTime, End: blocking.EndTime}, nil
}
