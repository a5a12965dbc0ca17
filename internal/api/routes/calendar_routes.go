package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/todotracker/backend/internal/api/dto"
	"github.com/todotracker/backend/internal/api/handlers"
	"github.com/todotracker/backend/internal/api/middleware"
)

// CalendarRoutes handles the setup of calendar view routes
type CalendarRoutes struct {
	handler   *handlers.CalendarHandler
	jwtSecret string
}

// NewCalendarRoutes creates a new CalendarRoutes instance
func NewCalendarRoutes(handler *handlers.CalendarHandler, jwtSecret string) *CalendarRoutes {
	return &CalendarRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all calendar view routes
func (r *CalendarRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	calendar := router.Group("/api/calendar")
	calendar.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	calendar.Use(metrics.CollectMetrics())

	calendar.GET("/month", validation.ValidateQuery(&dto.MonthQuery{}), cache.CacheResponse(), r.handler.MonthView)
	calendar.GET("/week", validation.ValidateQuery(&dto.WeekQuery{}), cache.CacheResponse(), r.handler.WeekView)
}
