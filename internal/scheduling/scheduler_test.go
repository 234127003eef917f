package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Alxpy/backSistDent/internal/models"
)

// fakeRepo is an in-memory scheduling.Repository. FindConflicting applies the
// same predicate the Mongo implementation expresses as a range filter.
type fakeRepo struct {
	byID  map[primitive.ObjectID]*models.Appointment
	order []primitive.ObjectID
}

var _ Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[primitive.ObjectID]*models.Appointment)}
}

func (f *fakeRepo) Insert(_ context.Context, a *models.Appointment) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	stored := *a
	f.byID[a.ID] = &stored
	f.order = append(f.order, a.ID)
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeRepo) FindConflicting(_ context.Context, dentistID primitive.ObjectID, iv Interval, excludeID *primitive.ObjectID) (*models.Appointment, error) {
	for _, id := range f.order {
		a := f.byID[id]
		if a.DentistID != dentistID || a.Status == models.StatusCancelled {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.StartTime.Before(iv.End) && a.EndTime.After(iv.Start) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Update(_ context.Context, id primitive.ObjectID, fields UpdateFields) (*models.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.StartTime = fields.StartTime
	a.EndTime = fields.EndTime
	a.Duration = fields.Duration
	a.Notes = fields.Notes
	a.Status = fields.Status
	a.UpdatedAt = time.Now()
	copied := *a
	return &copied, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	copied := *a
	return &copied, nil
}

type fakeNotifier struct {
	reminders []*models.Appointment
}

func (f *fakeNotifier) SendReminder(a *models.Appointment) {
	f.reminders = append(f.reminders, a)
}

func newTestScheduler() (*Scheduler, *fakeRepo, *fakeNotifier) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	clock := fixedClock{t: time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC)}
	return NewScheduler(repo, notifier, clock, zap.NewNop()), repo, notifier
}

func requestAt(hour, min, duration int) Request {
	return Request{
		Patient:   patientHex,
		StartTime: time.Date(2030, 5, 12, hour, min, 0, 0, time.UTC).Format(time.RFC3339),
		Duration:  duration,
	}
}

func TestCreateAppointment(t *testing.T) {
	s, repo, notifier := newTestScheduler()
	dentist := primitive.NewObjectID()

	apt, err := s.Create(context.Background(), requestAt(9, 0, 30), dentist)
	require.NoError(t, err)

	assert.False(t, apt.ID.IsZero())
	assert.Equal(t, dentist, apt.DentistID)
	assert.Equal(t, models.StatusScheduled, apt.Status)
	assert.False(t, apt.ReminderSent)
	assert.Equal(t, apt.StartTime.Add(30*time.Minute), apt.EndTime)
	assert.Len(t, repo.byID, 1)
	assert.Len(t, notifier.reminders, 1)
}

func TestCreateRejectsInvalidRequest(t *testing.T) {
	s, repo, notifier := newTestScheduler()

	req := requestAt(9, 0, 10) // below minimum duration
	_, err := s.Create(context.Background(), req, primitive.NewObjectID())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, repo.byID, "nothing may be persisted on validation failure")
	assert.Empty(t, notifier.reminders)
}

func TestCreateConflictReportsBlockingInterval(t *testing.T) {
	s, _, notifier := newTestScheduler()
	dentist := primitive.NewObjectID()

	_, err := s.Create(context.Background(), requestAt(9, 0, 30), dentist)
	require.NoError(t, err)

	_, err = s.Create(context.Background(), requestAt(9, 15, 30), dentist)
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, time.Date(2030, 5, 12, 9, 0, 0, 0, time.UTC), cErr.Start)
	assert.Equal(t, time.Date(2030, 5, 12, 9, 30, 0, 0, time.UTC), cErr.End)
	assert.Len(t, notifier.reminders, 1, "no reminder for rejected booking")
}

func TestCreateTouchingSlotSucceeds(t *testing.T) {
	s, repo, _ := newTestScheduler()
	dentist := primitive.NewObjectID()

	_, err := s.Create(context.Background(), requestAt(9, 0, 30), dentist)
	require.NoError(t, err)

	// [09:30,10:00) touches [09:00,09:30) but does not overlap.
	_, err = s.Create(context.Background(), requestAt(9, 30, 30), dentist)
	require.NoError(t, err)
	assert.Len(t, repo.byID, 2)
}

func TestCreateOtherDentistUnaffected(t *testing.T) {
	s, repo, _ := newTestScheduler()

	_, err := s.Create(context.Background(), requestAt(9, 0, 30), primitive.NewObjectID())
	require.NoError(t, err)

	_, err = s.Create(context.Background(), requestAt(9, 15, 30), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Len(t, repo.byID, 2)
}

func TestCancelledAppointmentFreesSlot(t *testing.T) {
	s, _, _ := newTestScheduler()
	dentist := primitive.NewObjectID()

	first, err := s.Create(context.Background(), requestAt(9, 0, 30), dentist)
	require.NoError(t, err)

	cancelled, err := s.Cancel(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// Identical interval now books cleanly.
	_, err = s.Create(context.Background(), requestAt(9, 0, 30), dentist)
	assert.NoError(t, err)
}

func TestCancelNotFound(t *testing.T) {
	s, _, _ := newTestScheduler()
	_, err := s.Cancel(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelTerminalStateRejected(t *testing.T) {
	s, repo, _ := newTestScheduler()

	for _, terminal := range []string{models.StatusCompleted, models.StatusNoShow} {
		dentist := primitive.NewObjectID()
		apt, err := s.Create(context.Background(), requestAt(9, 0, 30), dentist)
		require.NoError(t, err)

		req := requestAt(9, 0, 30)
		req.Status = terminal
		_, err = s.Update(context.Background(), apt.ID, req, dentist)
		require.NoError(t, err)

		_, err = s.Cancel(context.Background(), apt.ID)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "cancelling a %s appointment must fail", terminal)

		stored, err := repo.FindByID(context.Background(), apt.ID)
		require.NoError(t, err)
		assert.Equal(t, terminal, stored.Status, "status must be untouched")
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	s, _, _ := newTestScheduler()
	apt, err := s.Create(context.Background(), requestAt(9, 0, 30), primitive.NewObjectID())
	require.NoError(t, err)

	_, err = s.Cancel(context.Background(), apt.ID)
	require.NoError(t, err)
	again, err := s.Cancel(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, again.Status)
}

func TestUpdateNotFound(t *testing.T) {
	s, _, _ := newTestScheduler()
	_, err := s.Update(context.Background(), primitive.NewObjectID(), requestAt(9, 0, 30), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateConflictsWithOtherAppointment(t *testing.T) {
	s, _, _ := newTestScheduler()
	dentist := primitive.NewObjectID()

	a, err := s.Create(context.Background(), requestAt(9, 0, 30), dentist)
	require.NoError(t, err)
	b, err := s.Create(context.Background(), requestAt(10, 0, 30), dentist)
	require.NoError(t, err)

	// Move A onto B's slot.
	_, err = s.Update(context.Background(), a.ID, requestAt(10, 15, 30), dentist)
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, b.StartTime, cErr.Start)
	assert.Equal(t, b.EndTime, cErr.End)
}

func TestUpdateExcludesItself(t *testing.T) {
	s, _, notifier := newTestScheduler()
	dentist := primitive.NewObjectID()

	a, err := s.Create(context.Background(), requestAt(9, 0, 30), dentist)
	require.NoError(t, err)

	// Unchanged time overlaps only itself and must succeed.
	req := requestAt(9, 0, 30)
	req.Notes = "bring x-rays"
	updated, err := s.Update(context.Background(), a.ID, req, dentist)
	require.NoError(t, err)
	assert.Equal(t, "bring x-rays", updated.Notes)
	assert.Len(t, notifier.reminders, 2, "update fires the reminder again")
}

func TestUpdateReplacesNotes(t *testing.T) {
	s, _, _ := newTestScheduler()
	dentist := primitive.NewObjectID()

	req := requestAt(9, 0, 30)
	req.Notes = "bring x-rays"
	a, err := s.Create(context.Background(), req, dentist)
	require.NoError(t, err)
	require.Equal(t, "bring x-rays", a.Notes)

	// Notes are replaced wholesale: omitting the field clears them.
	updated, err := s.Update(context.Background(), a.ID, requestAt(9, 0, 30), dentist)
	require.NoError(t, err)
	assert.Empty(t, updated.Notes)
}

func TestUpdateRecomputesEndTime(t *testing.T) {
	s, _, _ := newTestScheduler()
	dentist := primitive.NewObjectID()

	a, err := s.Create(context.Background(), requestAt(9, 0, 30), dentist)
	require.NoError(t, err)

	updated, err := s.Update(context.Background(), a.ID, requestAt(11, 0, 60), dentist)
	require.NoError(t, err)
	assert.Equal(t, updated.StartTime.Add(60*time.Minute), updated.EndTime)
	assert.Equal(t, 60, updated.Duration)
}

func TestUpdateStatusTransition(t *testing.T) {
	s, _, _ := newTestScheduler()
	dentist := primitive.NewObjectID()

	a, err := s.Create(context.Background(), requestAt(9, 0, 30), dentist)
	require.NoError(t, err)

	req := requestAt(9, 0, 30)
	req.Status = models.StatusCompleted
	updated, err := s.Update(context.Background(), a.ID, req, dentist)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)

	// Terminal states stay terminal.
	req.Status = models.StatusScheduled
	_, err = s.Update(context.Background(), a.ID, req, dentist)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "status", vErr.Fields[0].Field)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.StatusScheduled, models.StatusCompleted))
	assert.True(t, CanTransition(models.StatusScheduled, models.StatusCancelled))
	assert.True(t, CanTransition(models.StatusScheduled, models.StatusNoShow))
	assert.True(t, CanTransition(models.StatusCompleted, models.StatusCompleted))

	assert.False(t, CanTransition(models.StatusCompleted, models.StatusScheduled))
	assert.False(t, CanTransition(models.StatusCancelled, models.StatusScheduled))
	assert.False(t, CanTransition(models.StatusNoShow, models.StatusCompleted))
}
