package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Alxpy/backSistDent/internal/models"
	"github.com/Alxpy/backSistDent/internal/utils"
)

type PatientRequest struct {
	Name           string                 `json:"name" binding:"required,min=2"`
	CI             string                 `json:"ci" binding:"required"`
	BirthDate      *time.Time             `json:"birthDate,omitempty"`
	Gender         string                 `json:"gender"`
	Phone          string                 `json:"phone" binding:"required"`
	Email          string                 `json:"email,omitempty"`
	Address        *models.Address        `json:"address,omitempty"`
	MedicalRecords []models.MedicalRecord `json:"medicalRecords,omitempty"`
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid patient data", nil)
		return
	}

	gender := req.Gender
	if gender == "" {
		gender = "unspecified"
	}

	patient := models.Patient{
		Name:           req.Name,
		CI:             req.CI,
		BirthDate:      req.BirthDate,
		Gender:         gender,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		MedicalRecords: req.MedicalRecords,
		IsActive:       true,
	}
	if err := h.Patients.Insert(c.Request.Context(), &patient); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.Send(c, http.StatusConflict, "A patient with this CI already exists", nil)
			return
		}
		h.Log.Error("failed to insert patient", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to create patient", nil)
		return
	}

	utils.Send(c, http.StatusCreated, "Patient created", patient)
}

func (h *Handler) GetPatients(c *gin.Context) {
	patients, err := h.Patients.List(c.Request.Context())
	if err != nil {
		h.Log.Error("failed to list patients", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to retrieve patients", nil)
		return
	}
	utils.Send(c, http.StatusOK, "Patients retrieved", patients)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid patient id", nil)
		return
	}

	patient, err := h.Patients.FindByID(c.Request.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Send(c, http.StatusNotFound, "Patient not found", nil)
			return
		}
		h.Log.Error("failed to load patient", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to retrieve patient", nil)
		return
	}
	utils.Send(c, http.StatusOK, "Patient retrieved", patient)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid patient id", nil)
		return
	}

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid patient data", nil)
		return
	}

	fields := bson.M{
		"name":  req.Name,
		"ci":    req.CI,
		"phone": req.Phone,
		"email": req.Email,
	}
	if req.Gender != "" {
		fields["gender"] = req.Gender
	}
	if req.BirthDate != nil {
		fields["birthDate"] = *req.BirthDate
	}
	if req.Address != nil {
		fields["address"] = req.Address
	}
	if req.MedicalRecords != nil {
		fields["medicalRecords"] = req.MedicalRecords
	}

	patient, err := h.Patients.Update(c.Request.Context(), id, fields)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Send(c, http.StatusNotFound, "Patient not found", nil)
			return
		}
		h.Log.Error("failed to update patient", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to update patient", nil)
		return
	}
	utils.Send(c, http.StatusOK, "Patient updated", patient)
}

// DeletePatient deactivates the patient instead of removing the document, so
// historical appointments keep resolving.
func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid patient id", nil)
		return
	}

	patient, err := h.Patients.Deactivate(c.Request.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Send(c, http.StatusNotFound, "Patient not found", nil)
			return
		}
		h.Log.Error("failed to deactivate patient", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to delete patient", nil)
		return
	}
	utils.Send(c, http.StatusOK, "Patient deleted", patient)
}
