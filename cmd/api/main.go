package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/todotracker/backend/internal/api/handlers"
	"github.com/todotracker/backend/internal/api/middleware"
	"github.com/todotracker/backend/internal/api/routes"
	"github.com/todotracker/backend/internal/domain/calendar"
	"github.com/todotracker/backend/internal/domain/category"
	"github.com/todotracker/backend/internal/domain/task"
	"github.com/todotracker/backend/internal/domain/user"
	"github.com/todotracker/backend/internal/infrastructure/cache"
	"github.com/todotracker/backend/internal/infrastructure/persistence/postgres/connection"
	"github.com/todotracker/backend/internal/infrastructure/persistence/postgres/migrations"
	"github.com/todotracker/backend/internal/infrastructure/scheduler"
	"github.com/todotracker/backend/pkg/config"
	"github.com/todotracker/backend/pkg/logger"
	"github.com/todotracker/backend/pkg/security/auth"
	"go.uber.org/zap"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	// Set up Gin
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Type",
			"Authorization",
			"X-Forwarded-For",
			"X-Real-IP",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Connect to database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis
	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Rate limiter for the credential endpoints
	rateLimiter := auth.NewRedisRateLimiter(redisClient.GetClient(), 1*time.Minute, 1000)

	cacheMiddleware := middleware.NewCacheMiddleware(redisClient, 5*time.Minute)

	// Audit logger for irreversible deletes
	auditLogger := task.NewAuditLogger(cfg.Server.Mode != "production")

	// Initialize repositories
	taskRepo := task.NewRepository(db)
	categoryRepo := category.NewRepository(db)
	userRepo := user.NewRepository(db)

	// Initialize services
	taskService := task.NewService(taskRepo, auditLogger, log.Logger)
	categoryService := category.NewService(categoryRepo, taskRepo, log.Logger)
	calendarService := calendar.NewService(taskRepo, log.Logger)
	userService := user.NewService(userRepo, cfg, log.Logger)

	// Start the trash retention sweep
	retentionScheduler := scheduler.NewScheduler(taskService, log, cfg.Retention.TrashDays, cfg.Retention.SweepInterval)
	retentionScheduler.Start()
	defer retentionScheduler.Stop()
	log.Info("Trash retention scheduler started")

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(taskService, log.Logger)
	trashHandler := handlers.NewTrashHandler(taskService, log.Logger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, log.Logger)
	calendarHandler := handlers.NewCalendarHandler(calendarService, log.Logger)
	userHandler := handlers.NewUserHandler(userService, log.Logger)

	// Register routes
	routes.NewHealthRoutes(db, redisClient).RegisterRoutes(router)
	routes.NewUserRoutes(userHandler, cfg.Auth.JWTSecret, rateLimiter).RegisterRoutes(router)
	routes.NewTaskRoutes(taskHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewTrashRoutes(trashHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewCategoryRoutes(categoryHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewCalendarRoutes(calendarHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)

	for _, route := range router.Routes() {
		log.Info("Route registered",
			zap.String("method", route.Method),
			zap.String("path", route.Path),
		)
	}

	// Start server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
