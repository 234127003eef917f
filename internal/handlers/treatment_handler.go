package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Alxpy/backSistDent/internal/models"
	"github.com/Alxpy/backSistDent/internal/utils"
)

type TreatmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Duration    int     `json:"duration" binding:"required,gt=0"`
}

func (h *Handler) CreateTreatment(c *gin.Context) {
	var req TreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid treatment data", nil)
		return
	}

	treatment := models.Treatment{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Duration:    req.Duration,
		IsActive:    true,
	}
	if err := h.Treatments.Insert(c.Request.Context(), &treatment); err != nil {
		h.Log.Error("failed to insert treatment", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to create treatment", nil)
		return
	}

	utils.Send(c, http.StatusCreated, "Treatment created", treatment)
}

func (h *Handler) GetTreatments(c *gin.Context) {
	treatments, err := h.Treatments.List(c.Request.Context())
	if err != nil {
		h.Log.Error("failed to list treatments", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to retrieve treatments", nil)
		return
	}
	utils.Send(c, http.StatusOK, "Treatments retrieved", treatments)
}

func (h *Handler) GetTreatment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid treatment id", nil)
		return
	}

	treatment, err := h.Treatments.FindByID(c.Request.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Send(c, http.StatusNotFound, "Treatment not found", nil)
			return
		}
		h.Log.Error("failed to load treatment", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to retrieve treatment", nil)
		return
	}
	utils.Send(c, http.StatusOK, "Treatment retrieved", treatment)
}

func (h *Handler) UpdateTreatment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid treatment id", nil)
		return
	}

	var req TreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid treatment data", nil)
		return
	}

	treatment, err := h.Treatments.Update(c.Request.Context(), id, bson.M{
		"name":        req.Name,
		"description": req.Description,
		"image":       req.Image,
		"price":       req.Price,
		"duration":    req.Duration,
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Send(c, http.StatusNotFound, "Treatment not found", nil)
			return
		}
		h.Log.Error("failed to update treatment", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to update treatment", nil)
		return
	}
	utils.Send(c, http.StatusOK, "Treatment updated", treatment)
}

func (h *Handler) DeleteTreatment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid treatment id", nil)
		return
	}

	treatment, err := h.Treatments.Deactivate(c.Request.Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.Send(c, http.StatusNotFound, "Treatment not found", nil)
			return
		}
		h.Log.Error("failed to deactivate treatment", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to delete treatment", nil)
		return
	}
	utils.Send(c, http.StatusOK, "Treatment deleted", treatment)
}
