package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/todotracker/backend/internal/api/dto"
	"github.com/todotracker/backend/internal/api/handlers"
	"github.com/todotracker/backend/internal/api/middleware"
)

// TrashRoutes handles the setup of trash-related routes
type TrashRoutes struct {
	handler   *handlers.TrashHandler
	jwtSecret string
}

// NewTrashRoutes creates a new TrashRoutes instance
func NewTrashRoutes(handler *handlers.TrashHandler, jwtSecret string) *TrashRoutes {
	return &TrashRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all trash-related routes
func (r *TrashRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	trash := router.Group("/api/trash")
	trash.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	trash.Use(metrics.CollectMetrics())

	trash.GET("", validation.ValidateQuery(&dto.TrashListQuery{}), r.handler.ListTrash)
	trash.POST("/:id/restore", cache.CacheInvalidate("tasks:*", "calendar:*"), r.handler.RestoreTask)
	trash.DELETE("/:id", r.handler.PermanentlyDeleteTask)
	trash.DELETE("", r.handler.EmptyTrash)
}
