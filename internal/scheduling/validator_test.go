package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

const (
	patientHex   = "64a1f0b2c3d4e5f601234567"
	treatmentHex = "64a1f0b2c3d4e5f601234568"
)

func testValidator() *Validator {
	return NewValidator(fixedClock{t: time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC)})
}

func validRequest() Request {
	return Request{
		Patient:   patientHex,
		StartTime: "2030-05-12T09:00:00Z",
		Duration:  30,
	}
}

func fieldNames(err error) []string {
	vErr, ok := err.(*ValidationError)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(vErr.Fields))
	for _, f := range vErr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestValidateSuccess(t *testing.T) {
	req := validRequest()
	req.Treatment = treatmentHex
	req.Notes = "first visit"

	valid, err := testValidator().Validate(req)
	require.NoError(t, err)

	assert.Equal(t, patientHex, valid.PatientID.Hex())
	assert.True(t, valid.HasTreat)
	assert.Equal(t, treatmentHex, valid.TreatmentID.Hex())
	assert.Equal(t, 30, valid.Duration)
	assert.Equal(t, "first visit", valid.Notes)
	assert.Equal(t, valid.Start.Add(30*time.Minute), valid.End, "end must be start plus duration")
}

func TestValidateTreatmentOptional(t *testing.T) {
	valid, err := testValidator().Validate(validRequest())
	require.NoError(t, err)
	assert.False(t, valid.HasTreat)
}

func TestValidateBadPatientID(t *testing.T) {
	req := validRequest()
	req.Patient = "not-an-id"
	_, err := testValidator().Validate(req)
	assert.Contains(t, fieldNames(err), "patient")
}

func TestValidateBadTreatmentID(t *testing.T) {
	req := validRequest()
	req.Treatment = "zzz"
	_, err := testValidator().Validate(req)
	assert.Contains(t, fieldNames(err), "treatment")
}

func TestValidateDurationBounds(t *testing.T) {
	for _, d := range []int{0, 14, 241, -30} {
		req := validRequest()
		req.Duration = d
		_, err := testValidator().Validate(req)
		assert.Contains(t, fieldNames(err), "duration", "duration %d must be rejected", d)
	}
	for _, d := range []int{15, 240, 60} {
		req := validRequest()
		req.Duration = d
		_, err := testValidator().Validate(req)
		assert.NoError(t, err, "duration %d must be accepted", d)
	}
}

func TestValidateStartInPast(t *testing.T) {
	req := validRequest()
	req.StartTime = "2030-04-30T09:00:00Z" // clock is 2030-05-01
	_, err := testValidator().Validate(req)
	assert.Contains(t, fieldNames(err), "startTime")
}

func TestValidateUnparseableStart(t *testing.T) {
	req := validRequest()
	req.StartTime = "12/05/2030 09:00"
	_, err := testValidator().Validate(req)
	assert.Contains(t, fieldNames(err), "startTime")
}

func TestValidateUnknownStatus(t *testing.T) {
	req := validRequest()
	req.Status = "postponed"
	_, err := testValidator().Validate(req)
	assert.Contains(t, fieldNames(err), "status")
}

func TestValidateCollectsAllFieldErrors(t *testing.T) {
	req := Request{Patient: "bad", StartTime: "bad", Duration: 5}
	_, err := testValidator().Validate(req)

	names := fieldNames(err)
	assert.ElementsMatch(t, []string{"patient", "startTime", "duration"}, names)
	assert.Contains(t, err.Error(), "duration")
}
