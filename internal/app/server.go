// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"krikins_backend/internal/config"
	"krikins_backend/internal/export"
	"krikins_backend/internal/jobs"
	"krikins_backend/internal/middleware"
	"krikins_backend/internal/profile"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	profileHandler *profile.Handler
	exportHandler  *export.Handler

	// Jobs
	uploadCleanupJob *jobs.UploadCleanupJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	profileHandler *profile.Handler,
	exportHandler *export.Handler,
	uploadCleanupJob *jobs.UploadCleanupJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// --- Setup Routes ---
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "Krikins badge card API",
			"version": "v1",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Krikins badge card API is healthy!"})
	})

	// Stored uploads are served as static files when disk mode is on.
	if cfg.UploadMode == config.UploadModeDisk {
		router.Static("/images", cfg.ImageStoragePath)
	}

	v1 := router.Group("/api/v1")
	profileHandler.RegisterRoutes(v1)
	exportHandler.RegisterRoutes(v1)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // card rendering can outlast a plain JSON response
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:       httpServer,
		router:           router,
		cfg:              cfg,
		logger:           logger,
		profileHandler:   profileHandler,
		exportHandler:    exportHandler,
		uploadCleanupJob: uploadCleanupJob,
	}, nil
}

func (s *Server) Start() error {
	if s.uploadCleanupJob != nil {
		if err := s.uploadCleanupJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start upload cleanup job", zap.Error(err))
		}
	} else {
		s.logger.Info("Upload cleanup job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.uploadCleanupJob != nil {
		s.uploadCleanupJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
