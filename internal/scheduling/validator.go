package scheduling

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Alxpy/backSistDent/internal/models"
)

// Duration bounds in minutes: 15 minutes to 4 hours.
const (
	MinDuration = 15
	MaxDuration = 240
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Request is an incoming scheduling request as the client sends it. Treatment,
// Notes and Status are optional; Status is only honored on updates.
type Request struct {
	Patient   string `json:"patient"`
	Treatment string `json:"treatment,omitempty"`
	StartTime string `json:"startTime"`
	Duration  int    `json:"duration"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status,omitempty"`
}

// ValidRequest is a normalized request that passed validation. End is computed
// from Start and Duration, never taken from the client.
type ValidRequest struct {
	PatientID   primitive.ObjectID
	TreatmentID primitive.ObjectID
	HasTreat    bool
	Start       time.Time
	End         time.Time
	Duration    int
	Notes       string
	Status      string
}

// Interval returns the half-open slot the request asks for.
func (r *ValidRequest) Interval() Interval {
	return Interval{Start: r.Start, End: r.End}
}

// Validator checks scheduling requests against the structural rules: id
// formats, duration bounds and the not-in-the-past rule evaluated against the
// injected clock at processing time.
type Validator struct {
	clock Clock
}

func NewValidator(clock Clock) *Validator {
	return &Validator{clock: clock}
}

// Validate returns the normalized request or a *ValidationError listing every
// offending field. It is pure apart from reading the clock.
func (v *Validator) Validate(req Request) (*ValidRequest, error) {
	var fields []FieldError

	valid := &ValidRequest{Notes: req.Notes, Status: req.Status}

	if !objectIDPattern.MatchString(req.Patient) {
		fields = append(fields, FieldError{Field: "patient", Message: "must be a 24-character hex id"})
	} else {
		valid.PatientID, _ = primitive.ObjectIDFromHex(req.Patient)
	}

	if req.Treatment != "" {
		if !objectIDPattern.MatchString(req.Treatment) {
			fields = append(fields, FieldError{Field: "treatment", Message: "must be a 24-character hex id"})
		} else {
			valid.TreatmentID, _ = primitive.ObjectIDFromHex(req.Treatment)
			valid.HasTreat = true
		}
	}

	if req.Duration < MinDuration || req.Duration > MaxDuration {
		fields = append(fields, FieldError{Field: "duration", Message: "must be between 15 and 240 minutes"})
	} else {
		valid.Duration = req.Duration
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	switch {
	case err != nil:
		fields = append(fields, FieldError{Field: "startTime", Message: "must be an RFC3339 timestamp"})
	case start.Before(v.clock.Now()):
		fields = append(fields, FieldError{Field: "startTime", Message: "cannot schedule in the past"})
	default:
		valid.Start = start
	}

	if req.Status != "" && !models.IsValidStatus(req.Status) {
		fields = append(fields, FieldError{Field: "status", Message: "unknown status"})
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	valid.End = valid.Start.Add(time.Duration(valid.Duration) * time.Minute)
	return valid, nil
}
