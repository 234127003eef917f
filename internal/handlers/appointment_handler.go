package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Alxpy/backSistDent/internal/middleware"
	"github.com/Alxpy/backSistDent/internal/scheduling"
	"github.com/Alxpy/backSistDent/internal/utils"
)

// dentistFromContext resolves the authenticated user id set by the JWT
// middleware. The authenticated user is the dentist the appointment is
// scheduled against.
func dentistFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	idHex := c.GetString(middleware.CtxUserID)
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req scheduling.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	dentistID, ok := dentistFromContext(c)
	if !ok {
		utils.Send(c, http.StatusUnauthorized, "Invalid user id in token", nil)
		return
	}

	apt, err := h.Scheduler.Create(c.Request.Context(), req, dentistID)
	if err != nil {
		h.respondSchedulingError(c, err)
		return
	}

	h.Collector.AppointmentsTotal.WithLabelValues("created").Inc()
	utils.Send(c, http.StatusCreated, "Appointment scheduled", apt)
}

func (h *Handler) GetAppointments(c *gin.Context) {
	var dentistID *primitive.ObjectID
	if dentistHex := c.Query("dentist"); dentistHex != "" {
		id, err := primitive.ObjectIDFromHex(dentistHex)
		if err != nil {
			utils.Send(c, http.StatusBadRequest, "Invalid dentist id", nil)
			return
		}
		dentistID = &id
	}

	appointments, err := h.Appointments.List(c.Request.Context(), dentistID, c.Query("status"))
	if err != nil {
		h.Log.Error("failed to list appointments", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to retrieve appointments", nil)
		return
	}
	utils.Send(c, http.StatusOK, "Appointments retrieved", appointments)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid appointment id", nil)
		return
	}

	apt, err := h.Appointments.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, scheduling.ErrNotFound) {
			utils.Send(c, http.StatusNotFound, "Appointment not found", nil)
			return
		}
		h.Log.Error("failed to load appointment", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to retrieve appointment", nil)
		return
	}
	utils.Send(c, http.StatusOK, "Appointment retrieved", apt)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid appointment id", nil)
		return
	}

	var req scheduling.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	dentistID, ok := dentistFromContext(c)
	if !ok {
		utils.Send(c, http.StatusUnauthorized, "Invalid user id in token", nil)
		return
	}

	apt, err := h.Scheduler.Update(c.Request.Context(), id, req, dentistID)
	if err != nil {
		h.respondSchedulingError(c, err)
		return
	}

	h.Collector.AppointmentsTotal.WithLabelValues("updated").Inc()
	utils.Send(c, http.StatusOK, "Appointment updated", apt)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid appointment id", nil)
		return
	}

	apt, err := h.Scheduler.Cancel(c.Request.Context(), id)
	if err != nil {
		h.respondSchedulingError(c, err)
		return
	}

	h.Collector.AppointmentsTotal.WithLabelValues("cancelled").Inc()
	utils.Send(c, http.StatusOK, "Appointment cancelled", apt)
}

// respondSchedulingError maps the scheduling error taxonomy onto the response
// envelope: validation 400, conflict 409, missing 404, everything else 500.
func (h *Handler) respondSchedulingError(c *gin.Context, err error) {
	var vErr *scheduling.ValidationError
	var cErr *scheduling.ConflictError
	switch {
	case errors.As(err, &vErr):
		utils.Send(c, http.StatusBadRequest, "Invalid appointment data", gin.H{"errors": vErr.Fields})
	case errors.As(err, &cErr):
		h.Collector.SchedulingConflicts.Inc()
		utils.Send(c, http.StatusConflict, "The dentist already has an appointment in that slot",
			gin.H{"conflict": cErr})
	case errors.Is(err, scheduling.ErrNotFound):
		utils.Send(c, http.StatusNotFound, "Appointment not found", nil)
	default:
		h.Log.Error("appointment operation failed", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Unexpected error", nil)
	}
}
