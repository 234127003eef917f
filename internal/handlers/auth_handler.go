package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Alxpy/backSistDent/internal/middleware"
	"github.com/Alxpy/backSistDent/internal/models"
	"github.com/Alxpy/backSistDent/internal/utils"
)

type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required"` // role document id
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid registration data", nil)
		return
	}

	roleID, err := primitive.ObjectIDFromHex(req.Role)
	if err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid role", nil)
		return
	}
	role, err := h.Roles.FindByID(c.Request.Context(), roleID)
	if err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid role", nil)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("failed to hash password", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to register user", nil)
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
		RoleID:    role.ID,
		IsActive:  true,
	}
	if err := h.Users.Insert(c.Request.Context(), &user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.Send(c, http.StatusConflict, "An account with this email already exists", nil)
			return
		}
		h.Log.Error("failed to insert user", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to register user", nil)
		return
	}

	token, err := utils.GenerateJWT(h.JWTSecret, user.ID.Hex(), role.Name)
	if err != nil {
		h.Log.Error("failed to sign token", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to register user", nil)
		return
	}

	utils.Send(c, http.StatusCreated, "User registered", gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Send(c, http.StatusBadRequest, "Invalid login data", nil)
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		utils.Send(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	role, err := h.Roles.FindByID(c.Request.Context(), user.RoleID)
	if err != nil {
		h.Log.Error("user references missing role",
			zap.String("user", user.ID.Hex()), zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to log in", nil)
		return
	}

	token, err := utils.GenerateJWT(h.JWTSecret, user.ID.Hex(), role.Name)
	if err != nil {
		h.Log.Error("failed to sign token", zap.Error(err))
		utils.Send(c, http.StatusInternalServerError, "Failed to log in", nil)
		return
	}

	if err := h.Users.TouchLastLogin(c.Request.Context(), user.ID); err != nil {
		h.Log.Warn("failed to record last login", zap.Error(err))
	}

	utils.Send(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// ValidateToken re-issues a token for the already-authenticated user, acting
// as a lightweight refresh endpoint.
func (h *Handler) ValidateToken(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.Send(c, http.StatusUnauthorized, "Invalid user id in token", nil)
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), userID)
	if err != nil {
		utils.Send(c, http.StatusNotFound, "User not found", nil)
		return
	}

	role, err := h.Roles.FindByID(c.Request.Context(), user.RoleID)
	if err != nil {
		utils.Send(c, http.StatusInternalServerError, "Failed to validate token", nil)
		return
	}

	token, err := utils.GenerateJWT(h.JWTSecret, user.ID.Hex(), role.Name)
	if err != nil {
		utils.Send(c, http.StatusInternalServerError, "Failed to validate token", nil)
		return
	}

	utils.Send(c, http.StatusOK, "Token valid", gin.H{
		"token": token,
		"user":  user,
	})
}
