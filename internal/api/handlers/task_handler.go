package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/todotracker/backend/internal/api/dto"
	"github.com/todotracker/backend/internal/api/middleware"
	"github.com/todotracker/backend/internal/domain/task"
	"go.uber.org/zap"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	service task.Service
	log     *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(service task.Service, log *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		log:     log,
	}
}

// CreateTask handles POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
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
	req := validated.(*dto.CreateTaskRequest)

	created, err := h.service.CreateTask(c.Request.Context(), task.CreateTaskInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// GetTask handles GET /api/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
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

	found, err := h.service.GetTask(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": found})
}

// ListTasks handles GET /api/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
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
	query := validated.(*dto.TaskListQuery)

	filter, err := h.buildFilter(userID, query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, total, err := h.service.ListTasks(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"tasks":  tasks,
			"total":  total,
			"limit":  filter.Limit,
			"offset": filter.Offset,
		},
	})
}

func (h *TaskHandler) buildFilter(userID uuid.UUID, query *dto.TaskListQuery) (task.TaskFilter, error) {
	filter := task.TaskFilter{
		UserID:          userID,
		Search:          query.Search,
		IncludeArchived: query.Archived,
		OrderBy:         query.OrderBy,
		OrderDir:        query.OrderDir,
		Limit:           clampPageSize(query.Limit),
		Offset:          query.Offset,
	}

	for _, s := range splitParam(query.Status) {
		filter.Statuses = append(filter.Statuses, task.TaskStatus(s))
	}
	for _, p := range splitParam(query.Priority) {
		filter.Priorities = append(filter.Priorities, task.TaskPriority(p))
	}
	for _, raw := range splitParam(query.CategoryIDs) {
		id, err := uuid.Parse(raw)
		if err != nil {
			return task.TaskFilter{}, err
		}
		filter.CategoryIDs = append(filter.CategoryIDs, id)
	}

	var err error
	if filter.DueFrom, err = parseDateParam(query.DueFrom); err != nil {
		return task.TaskFilter{}, err
	}
	if filter.DueTo, err = parseDateParam(query.DueTo); err != nil {
		return task.TaskFilter{}, err
	}

	return filter, nil
}

func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// UpdateTask handles PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
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

	validated, exists := c.Get("validated_model")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req := validated.(*dto.UpdateTaskRequest)

	updated, err := h.service.UpdateTask(c.Request.Context(), id, userID, task.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// UpdateTaskStatus handles PATCH /api/tasks/:id/status
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
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

	validated, exists := c.Get("validated_model")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req := validated.(*dto.UpdateTaskStatusRequest)

	updated, err := h.service.UpdateTaskStatus(c.Request.Context(), id, userID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// ArchiveTask handles PATCH /api/tasks/:id/archive
func (h *TaskHandler) ArchiveTask(c *gin.Context) {
	h.setArchived(c, true)
}

// UnarchiveTask handles PATCH /api/tasks/:id/unarchive
func (h *TaskHandler) UnarchiveTask(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *TaskHandler) setArchived(c *gin.Context, archived bool) {
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

	var updated *task.Task
	if archived {
		updated, err = h.service.ArchiveTask(c.Request.Context(), id, userID)
	} else {
		updated, err = h.service.UnarchiveTask(c.Request.Context(), id, userID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DeleteTask handles DELETE /api/tasks/:id (moves the task to trash)
func (h *TaskHandler) DeleteTask(c *gin.Context) {
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

	if err := h.service.DeleteTask(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "task moved to trash"}})
}

// BulkUpdate handles POST /api/tasks/bulk
func (h *TaskHandler) BulkUpdate(c *gin.Context) {
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
	req := validated.(*dto.BulkUpdateRequest)

	ids := make([]uuid.UUID, 0, len(req.TaskIDs))
	for _, raw := range req.TaskIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id in batch"})
			return
		}
		ids = append(ids, id)
	}

	result, err := h.service.BulkUpdate(c.Request.Context(), userID, task.BulkUpdateInput{
		Action:   task.BulkAction(req.Action),
		TaskIDs:  ids,
		Status:   req.Status,
		Priority: req.Priority,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GetTaskHistory handles GET /api/tasks/:id/history
func (h *TaskHandler) GetTaskHistory(c *gin.Context) {
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

	history, err := h.service.ListTaskHistory(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": history})
}
