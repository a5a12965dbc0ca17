package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/todotracker/backend/internal/api/dto"
	"github.com/todotracker/backend/internal/api/middleware"
	"github.com/todotracker/backend/internal/domain/task"
	"go.uber.org/zap"
)

// TrashHandler handles trash-related HTTP requests
type TrashHandler struct {
	service task.Service
	log     *zap.Logger
}

// NewTrashHandler creates a new trash handler
func NewTrashHandler(service task.Service, log *zap.Logger) *TrashHandler {
	return &TrashHandler{
		service: service,
		log:     log,
	}
}

// ListTrash handles GET /api/trash
func (h *TrashHandler) ListTrash(c *gin.Context) {
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
	query := validated.(*dto.TrashListQuery)

	limit := clampPageSize(query.Limit)
	tasks, total, err := h.service.ListTrash(c.Request.Context(), userID, limit, query.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"tasks":  tasks,
			"total":  total,
			"limit":  limit,
			"offset": query.Offset,
		},
	})
}

// RestoreTask handles POST /api/trash/:id/restore
func (h *TrashHandler) RestoreTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	restored, err := h.service.RestoreTask(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": restored})
}

// PermanentlyDeleteTask handles DELETE /api/trash/:id
func (h *TrashHandler) PermanentlyDeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	if err := h.service.PermanentlyDeleteTask(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "task permanently deleted"}})
}

// EmptyTrash handles DELETE /api/trash
func (h *TrashHandler) EmptyTrash(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	deleted, err := h.service.EmptyTrash(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": deleted}})
}
