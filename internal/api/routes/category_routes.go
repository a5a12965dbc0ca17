package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/todotracker/backend/internal/api/dto"
	"github.com/todotracker/backend/internal/api/handlers"
	"github.com/todotracker/backend/internal/api/middleware"
)

// CategoryRoutes handles the setup of category-related routes
type CategoryRoutes struct {
	handler   *handlers.CategoryHandler
	jwtSecret string
}

// NewCategoryRoutes creates a new CategoryRoutes instance
func NewCategoryRoutes(handler *handlers.CategoryHandler, jwtSecret string) *CategoryRoutes {
	return &CategoryRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all category-related routes
func (r *CategoryRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	categories := router.Group("/api/categories")
	categories.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	categories.Use(metrics.CollectMetrics())

	categories.GET("", cache.CacheResponse(), r.handler.ListCategories)
	categories.POST("", validation.ValidateRequest(&dto.CreateCategoryRequest{}), cache.CacheInvalidate("categories:*"), r.handler.CreateCategory)
	categories.PUT("/:id", validation.ValidateRequest(&dto.UpdateCategoryRequest{}), cache.CacheInvalidate("categories:*"), r.handler.UpdateCategory)
	categories.DELETE("/:id", cache.CacheInvalidate("categories:*", "tasks:*", "calendar:*"), r.handler.DeleteCategory)

	// Task-category links live under the task resource.
	taskCategories := router.Group("/api/tasks/:id/categories")
	taskCategories.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	taskCategories.Use(metrics.CollectMetrics())

	taskCategories.GET("", r.handler.ListForTask)
	taskCategories.POST("", validation.ValidateRequest(&dto.AssignCategoryRequest{}), cache.CacheInvalidate("tasks:*", "calendar:*"), r.handler.AssignToTask)
	taskCategories.DELETE("/:category_id", cache.CacheInvalidate("tasks:*", "calendar:*"), r.handler.RemoveFromTask)
}
