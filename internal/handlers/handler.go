package handlers

import (
	"go.uber.org/zap"

	"github.com/Alxpy/backSistDent/internal/metrics"
	"github.com/Alxpy/backSistDent/internal/repository"
	"github.com/Alxpy/backSistDent/internal/scheduling"
)

// Handler carries every dependency the HTTP layer needs. All endpoint
// functions are methods on it.
type Handler struct {
	Scheduler    *scheduling.Scheduler
	Appointments *repository.AppointmentRepository
	Users        *repository.UserRepository
	Roles        *repository.RoleRepository
	Patients     *repository.PatientRepository
	Treatments   *repository.TreatmentRepository
	Collector    *metrics.Collector
	Log          *zap.Logger
	JWTSecret    []byte
}

func NewHandler(
	scheduler *scheduling.Scheduler,
	appointments *repository.AppointmentRepository,
	users *repository.UserRepository,
	roles *repository.RoleRepository,
	patients *repository.PatientRepository,
	treatments *repository.TreatmentRepository,
	collector *metrics.Collector,
	log *zap.Logger,
	jwtSecret []byte,
) *Handler {
	return &Handler{
		Scheduler:    scheduler,
		Appointments: appointments,
		Users:        users,
		Roles:        roles,
		Patients:     patients,
		Treatments:   treatments,
		Collector:    collector,
		Log:          log,
		JWTSecret:    jwtSecret,
	}
}
