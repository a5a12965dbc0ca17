package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/todotracker/backend/internal/domain/calendar"
	"github.com/todotracker/backend/internal/domain/category"
	"github.com/todotracker/backend/internal/domain/task"
	"github.com/todotracker/backend/internal/domain/user"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// clampPageSize bounds the caller-supplied page size to the API
// maximum. The repository itself is unbounded; the cap lives here.
func clampPageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

// statusForError maps domain sentinel errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, task.ErrInvalidInput),
		errors.Is(err, category.ErrInvalidInput),
		errors.Is(err, calendar.ErrInvalidInput),
		errors.Is(err, user.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// parseDateParam parses an optional YYYY-MM-DD query value.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(task.DueDateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
