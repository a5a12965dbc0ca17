package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/todotracker/backend/internal/api/dto"
	"github.com/todotracker/backend/internal/api/handlers"
	"github.com/todotracker/backend/internal/api/middleware"
	"github.com/todotracker/backend/pkg/security/auth"
)

// UserRoutes handles the setup of account routes
type UserRoutes struct {
	handler   *handlers.UserHandler
	jwtSecret string
	limiter   auth.RateLimiter
}

// NewUserRoutes creates a new UserRoutes instance
func NewUserRoutes(handler *handlers.UserHandler, jwtSecret string, limiter auth.RateLimiter) *UserRoutes {
	return &UserRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
		limiter:   limiter,
	}
}

// RegisterRoutes registers all account routes
func (r *UserRoutes) RegisterRoutes(router *gin.Engine) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	users := router.Group("/api/users")
	users.Use(metrics.CollectMetrics())

	// Credential endpoints are rate limited but unauthenticated.
	public := users.Group("")
	if r.limiter != nil {
		public.Use(middleware.RateLimitMiddleware(r.limiter))
	}
	public.POST("/register", validation.ValidateRequest(&dto.RegisterRequest{}), r.handler.Register)
	public.POST("/login", validation.ValidateRequest(&dto.LoginRequest{}), r.handler.Login)

	authed := users.Group("")
	authed.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	authed.POST("/logout", r.handler.Logout)
	authed.GET("/me", r.handler.Me)
	authed.GET("/preferences", r.handler.GetPreferences)
	authed.PUT("/preferences", validation.ValidateRequest(&dto.UpdatePreferencesRequest{}), r.handler.UpdatePreferences)
	authed.GET("/activity", validation.ValidateQuery(&dto.ActivityQuery{}), r.handler.ListActivity)
}
