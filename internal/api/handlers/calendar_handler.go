package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/todotracker/backend/internal/api/dto"
	"github.com/todotracker/backend/internal/api/middleware"
	"github.com/todotracker/backend/internal/domain/calendar"
	"github.com/todotracker/backend/internal/domain/task"
	"go.uber.org/zap"
)

// CalendarHandler handles calendar view HTTP requests
type CalendarHandler struct {
	service calendar.Service
	log     *zap.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(service calendar.Service, log *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		service: service,
		log:     log,
	}
}

// MonthView handles GET /api/calendar/month
func (h *CalendarHandler) MonthView(c *gin.Context) {
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
	query := validated.(*dto.MonthQuery)

	now := time.Now().UTC()
	year := query.Year
	month := time.Month(query.Month)
	if year == 0 {
		year = now.Year()
	}
	if query.Month == 0 {
		month = now.Month()
	}

	view, err := h.service.MonthView(c.Request.Context(), userID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

// WeekView handles GET /api/calendar/week
func (h *CalendarHandler) WeekView(c *gin.Context) {
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
	query := validated.(*dto.WeekQuery)

	ref := time.Now().UTC()
	if query.Date != "" {
		parsed, err := time.Parse(task.DueDateLayout, query.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		ref = parsed
	}

	view, err := h.service.WeekView(c.Request.Context(), userID, ref)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}
