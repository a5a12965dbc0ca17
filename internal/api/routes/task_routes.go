package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/todotracker/backend/internal/api/dto"
	"github.com/todotracker/backend/internal/api/handlers"
	"github.com/todotracker/backend/internal/api/middleware"
)

// TaskRoutes handles the setup of task-related routes
type TaskRoutes struct {
	handler   *handlers.TaskHandler
	jwtSecret string
}

// NewTaskRoutes creates a new TaskRoutes instance
func NewTaskRoutes(handler *handlers.TaskHandler, jwtSecret string) *TaskRoutes {
	return &TaskRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all task-related routes
func (r *TaskRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	tasks := router.Group("/api/tasks")
	tasks.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	tasks.Use(metrics.CollectMetrics())

	// Read operations with caching
	tasks.GET("", validation.ValidateQuery(&dto.TaskListQuery{}), cache.CacheResponse(), r.handler.ListTasks)
	tasks.GET("/:id", cache.CacheResponse(), r.handler.GetTask)
	tasks.GET("/:id/history", r.handler.GetTaskHistory)

	// Write operations with cache invalidation and validation. Every
	// mutation also drops the calendar views, which overlay tasks.
	tasks.POST("", validation.ValidateRequest(&dto.CreateTaskRequest{}), cache.CacheInvalidate("tasks:*", "calendar:*"), r.handler.CreateTask)
	tasks.PUT("/:id", validation.ValidateRequest(&dto.UpdateTaskRequest{}), cache.CacheInvalidate("tasks:*", "calendar:*"), r.handler.UpdateTask)
	tasks.DELETE("/:id", cache.CacheInvalidate("tasks:*", "calendar:*"), r.handler.DeleteTask)

	tasks.PATCH("/:id/status", validation.ValidateRequest(&dto.UpdateTaskStatusRequest{}), cache.CacheInvalidate("tasks:*", "calendar:*"), r.handler.UpdateTaskStatus)
	tasks.PATCH("/:id/archive", cache.CacheInvalidate("tasks:*", "calendar:*"), r.handler.ArchiveTask)
	tasks.PATCH("/:id/unarchive", cache.CacheInvalidate("tasks:*", "calendar:*"), r.handler.UnarchiveTask)

	tasks.POST("/bulk", validation.ValidateRequest(&dto.BulkUpdateRequest{}), cache.CacheInvalidate("tasks:*", "calendar:*"), r.handler.BulkUpdate)
}
