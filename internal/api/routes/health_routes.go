package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/todotracker/backend/internal/infrastructure/cache"
	"github.com/todotracker/backend/internal/infrastructure/persistence/postgres/connection"
)

// HealthRoutes exposes liveness and readiness endpoints
type HealthRoutes struct {
	db    *connection.Database
	redis *cache.RedisClient
}

// NewHealthRoutes creates a new HealthRoutes instance
func NewHealthRoutes(db *connection.Database, redis *cache.RedisClient) *HealthRoutes {
	return &HealthRoutes{
		db:    db,
		redis: redis,
	}
}

// RegisterRoutes registers the health endpoints
func (r *HealthRoutes) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", r.health)
	router.GET("/health/ready", r.ready)
	router.GET("/health/cache", r.cacheHealth)
}

func (r *HealthRoutes) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ready reports the state of the backing services. A degraded
// dependency flips the status code so load balancers stop routing.
func (r *HealthRoutes) ready(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	sqlDB, err := r.db.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		checks["database"] = "unreachable"
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if r.redis != nil {
		if err := r.redis.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = "unreachable"
			healthy = false
		} else {
			checks["redis"] = "ok"
			checks["cache"] = r.redis.GetMetrics()
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": checks})
}

func (r *HealthRoutes) cacheHealth(c *gin.Context) {
	if err := r.redis.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"component": "cache",
			"error":     err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"component": "cache",
		"metrics":   r.redis.GetMetrics(),
	})
}
