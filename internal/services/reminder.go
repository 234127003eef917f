package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Alxpy/backSistDent/internal/metrics"
	"github.com/Alxpy/backSistDent/internal/models"
	"github.com/Alxpy/backSistDent/internal/repository"
)

// ReminderService notifies patients about scheduled appointments. It is
// fire-and-forget: failures are logged and never surfaced to the request that
// triggered them. After a reminder fires the appointment's reminderSent flag
// is set.
type ReminderService struct {
	appointments *repository.AppointmentRepository
	patients     *repository.PatientRepository
	users        *repository.UserRepository
	collector    *metrics.Collector
	log          *zap.Logger
	textbeltKey  string
}

func NewReminderService(
	appointments *repository.AppointmentRepository,
	patients *repository.PatientRepository,
	users *repository.UserRepository,
	collector *metrics.Collector,
	log *zap.Logger,
	textbeltKey string,
) *ReminderService {
	return &ReminderService{
		appointments: appointments,
		patients:     patients,
		users:        users,
		collector:    collector,
		log:          log,
		textbeltKey:  textbeltKey,
	}
}

// SendReminder dispatches the reminder in a goroutine so the booking response
// is never blocked on notification I/O.
func (s *ReminderService) SendReminder(a *models.Appointment) {
	apt := *a
	go s.send(&apt)
}

func (s *ReminderService) send(a *models.Appointment) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	patient, err := s.patients.FindByID(ctx, a.PatientID)
	if err != nil {
		s.log.Warn("reminder skipped: patient lookup failed",
			zap.String("appointment", a.ID.Hex()), zap.Error(err))
		s.collector.RemindersFailedTotal.Inc()
		return
	}
	dentist, err := s.users.FindByID(ctx, a.DentistID)
	if err != nil {
		s.log.Warn("reminder skipped: dentist lookup failed",
			zap.String("appointment", a.ID.Hex()), zap.Error(err))
		s.collector.RemindersFailedTotal.Inc()
		return
	}

	s.log.Info("appointment reminder",
		zap.String("appointment", a.ID.Hex()),
		zap.String("patient", patient.Name),
		zap.String("dentist", "Dr. "+dentist.LastName),
		zap.Time("start", a.StartTime))

	if patient.Phone != "" && s.textbeltKey != "" {
		s.sendSMS(patient.Phone, fmt.Sprintf(
			"Reminder: appointment with Dr. %s on %s.",
			dentist.LastName,
			a.StartTime.Format("Jan 2 at 3:04 PM"),
		))
	}

	if err := s.appointments.MarkReminderSent(ctx, a.ID); err != nil {
		s.log.Warn("failed to mark reminder as sent",
			zap.String("appointment", a.ID.Hex()), zap.Error(err))
		s.collector.RemindersFailedTotal.Inc()
		return
	}
	s.collector.RemindersSentTotal.Inc()
}

// Textbelt free key allows 1 SMS per day; a paid key is needed for more.
func (s *ReminderService) sendSMS(phone, message string) {
	postBody, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.textbeltKey,
	})

	resp, err := http.Post("https://textbelt.com/text", "application/json", bytes.NewBuffer(postBody))
	if err != nil {
		s.log.Warn("textbelt request failed", zap.String("phone", phone), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.log.Warn("textbelt response unreadable", zap.Error(err))
		return
	}
	if success, _ := result["success"].(bool); !success {
		reason, _ := result["error"].(string)
		s.log.Warn("textbelt rejected SMS", zap.String("phone", phone), zap.String("reason", reason))
	}
}
