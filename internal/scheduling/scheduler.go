package scheduling

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Alxpy/backSistDent/internal/models"
)

// Scheduler orchestrates the appointment lifecycle: every create and update
// re-runs validation and conflict detection before anything is committed.
//
// The conflict check and the write are not transactional. Two concurrent
// requests for overlapping slots can both pass the read before either commits;
// callers must tolerate that rare double-booking under concurrent load.
type Scheduler struct {
	repo      Repository
	validator *Validator
	conflicts *ConflictResolver
	notifier  Notifier
	log       *zap.Logger
}

func NewScheduler(repo Repository, notifier Notifier, clock Clock, log *zap.Logger) *Scheduler {
	return &Scheduler{
		repo:      repo,
		validator: NewValidator(clock),
		conflicts: NewConflictResolver(repo),
		notifier:  notifier,
		log:       log,
	}
}

// CanTransition reports whether an appointment may move from one status to
// another. Only scheduled appointments move; completed, cancelled and no-show
// are terminal.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	if from != models.StatusScheduled {
		return false
	}
	switch to {
	case models.StatusCompleted, models.StatusCancelled, models.StatusNoShow:
		return true
	}
	return false
}

// Create validates the request, checks the dentist's calendar and persists a
// new scheduled appointment. Returns *ValidationError, *ConflictError or a
// wrapped persistence error.
func (s *Scheduler) Create(ctx context.Context, req Request, dentistID primitive.ObjectID) (*models.Appointment, error) {
	valid, err := s.validator.Validate(req)
	if err != nil {
		return nil, err
	}

	conflict, err := s.conflicts.FindConflict(ctx, dentistID, valid.Interval(), nil)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflict
	}

	now := s.validator.clock.Now()
	a := &models.Appointment{
		PatientID:    valid.PatientID,
		DentistID:    dentistID,
		StartTime:    valid.Start,
		Duration:     valid.Duration,
		EndTime:      valid.End,
		Status:       models.StatusScheduled,
		Notes:        valid.Notes,
		ReminderSent: false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if valid.HasTreat {
		a.TreatmentID = valid.TreatmentID
	}

	if err := s.repo.Insert(ctx, a); err != nil {
		s.log.Error("failed to insert appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.notifier.SendReminder(a)

	s.log.Info("appointment scheduled",
		zap.String("appointment", a.ID.Hex()),
		zap.String("dentist", dentistID.Hex()),
		zap.Time("start", a.StartTime),
		zap.Int("duration", a.Duration))
	return a, nil
}

// Update re-validates and re-checks conflicts for a rescheduled appointment,
// excluding the appointment itself from the overlap query. The stored end time
// is always recomputed from start and duration. The request's notes replace
// the stored notes wholesale: an omitted or empty notes field clears them.
func (s *Scheduler) Update(ctx context.Context, id primitive.ObjectID, req Request, dentistID primitive.ObjectID) (*models.Appointment, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	valid, err := s.validator.Validate(req)
	if err != nil {
		return nil, err
	}

	status := existing.Status
	if valid.Status != "" {
		if !CanTransition(existing.Status, valid.Status) {
			return nil, &ValidationError{Fields: []FieldError{{
				Field:   "status",
				Message: fmt.Sprintf("cannot transition from %s to %s", existing.Status, valid.Status),
			}}}
		}
		status = valid.Status
	}

	conflict, err := s.conflicts.FindConflict(ctx, dentistID, valid.Interval(), &id)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflict
	}

	updated, err := s.repo.Update(ctx, id, UpdateFields{
		StartTime: valid.Start,
		EndTime:   valid.End,
		Duration:  valid.Duration,
		Notes:     valid.Notes,
		Status:    status,
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		s.log.Error("failed to update appointment", zap.Error(err), zap.String("appointment", id.Hex()))
		return nil, fmt.Errorf("updating appointment: %w", err)
	}

	s.notifier.SendReminder(updated)

	s.log.Info("appointment rescheduled",
		zap.String("appointment", id.Hex()),
		zap.Time("start", updated.StartTime),
		zap.String("status", updated.Status))
	return updated, nil
}

// Cancel marks the appointment cancelled, freeing its slot for future
// bookings. No conflict check runs: cancelling only releases capacity. Only
// scheduled appointments can be cancelled; completed and no-show are terminal.
func (s *Scheduler) Cancel(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == models.StatusCancelled {
		return existing, nil
	}
	if !CanTransition(existing.Status, models.StatusCancelled) {
		return nil, &ValidationError{Fields: []FieldError{{
			Field:   "status",
			Message: fmt.Sprintf("cannot transition from %s to %s", existing.Status, models.StatusCancelled),
		}}}
	}

	cancelled, err := s.repo.UpdateStatus(ctx, id, models.StatusCancelled)
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		s.log.Error("failed to cancel appointment", zap.Error(err), zap.String("appointment", id.Hex()))
		return nil, fmt.Errorf("cancelling appointment: %w", err)
	}

	s.log.Info("appointment cancelled", zap.String("appointment", id.Hex()))
	return cancelled, nil
}
