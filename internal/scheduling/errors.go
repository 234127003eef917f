package scheduling

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when the referenced appointment does not exist.
	ErrNotFound = errors.New("appointment not found")
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field-level problem found in a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "invalid appointment request: " + strings.Join(msgs, "; ")
}

// ConflictError reports that the dentist already has an active appointment
// overlapping the requested slot. Start/End identify the blocking interval so
// the caller can show what is occupying it.
type ConflictError struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("dentist already booked from %s to %s",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}
