package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SamSnead85/ProjectApexHealth-sub002/config"
	"github.com/SamSnead85/ProjectApexHealth-sub002/handler"
	"github.com/SamSnead85/ProjectApexHealth-sub002/middleware"
	"github.com/SamSnead85/ProjectApexHealth-sub002/pkg/logger"
	"github.com/SamSnead85/ProjectApexHealth-sub002/service"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Document vault is optional; without object storage the service still
	// serves the full lifecycle, uploads just return 503
	var vault *service.DocumentVault
	if cfg.Minio.Endpoint != "" {
		vault, err = service.NewDocumentVault(&cfg.Minio)
		if err != nil {
			slog.Error("failed to initialize document vault", "error", err)
			os.Exit(1)
		}
		if err := vault.EnsureBucket(context.Background()); err != nil {
			slog.Error("failed to ensure document bucket", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Info("document vault disabled: no object storage configured")
	}

	// Request store starts from seed data; the sync adapter may overlay live
	// data once, best-effort
	store := service.NewAuthStore(service.SeedRequests(time.Now()))
	syncSvc := service.NewSyncService(&cfg.Sync, store)
	if syncSvc.Enabled() {
		go syncSvc.Sync(context.Background())
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	paHandler := handler.NewPriorAuthHandler(store, vault)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		pa := protected.Group("/v1/prior-auth")
		{
			pa.GET("", paHandler.List)
			pa.POST("", paHandler.Create)
			pa.GET("/metrics", paHandler.Metrics)
			pa.GET("/:id", paHandler.Get)
			pa.POST("/:id/submit", paHandler.Submit)
			pa.POST("/:id/documents", paHandler.UploadDocument)

			// Decisioning is limited to review staff
			review := pa.Group("/")
			review.Use(middleware.RequireRole(middleware.RoleReviewer, middleware.RoleAdmin))
			{
				review.POST("/:id/claim", paHandler.Claim)
				review.POST("/:id/request-info", paHandler.RequestInfo)
				review.POST("/:id/resume", paHandler.Resume)
				review.POST("/:id/approve", paHandler.Approve)
				review.POST("/:id/deny", paHandler.Deny)
			}
		}
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers for the portal front-end
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
