package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/todotracker/backend/internal/api/dto"
	"github.com/todotracker/backend/internal/api/middleware"
	"github.com/todotracker/backend/internal/domain/user"
	"go.uber.org/zap"
)

// UserHandler handles account HTTP requests
type UserHandler struct {
	service user.Service
	log     *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(service user.Service, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// Register handles POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	validated, exists := c.Get("validated_model")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req := validated.(*dto.RegisterRequest)

	created, err := h.service.Register(c.Request.Context(), user.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		IPAddress:   c.ClientIP(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	validated, exists := c.Get("validated_model")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req := validated.(*dto.LoginRequest)

	authed, token, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"user":  authed,
			"token": token,
		},
	})
}

// Logout handles POST /api/users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	token, exists := middleware.GetToken(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.service.Logout(c.Request.Context(), userID, token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "logged out"}})
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	found, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": found})
}

// GetPreferences handles GET /api/users/preferences
func (h *UserHandler) GetPreferences(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	prefs, err := h.service.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": prefs})
}

// UpdatePreferences handles PUT /api/users/preferences
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	validated, exists := c.Get("validated_model")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req := validated.(*dto.UpdatePreferencesRequest)

	prefs, err := h.service.UpdatePreferences(c.Request.Context(), userID, req.Settings)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": prefs})
}

// ListActivity handles GET /api/users/activity
func (h *UserHandler) ListActivity(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	validated, exists := c.Get("validated_query")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	query := validated.(*dto.ActivityQuery)

	entries, err := h.service.ListActivity(c.Request.Context(), userID, query.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}
