// Package http provides the HTTP adapter the UI shell calls into. It is a
// thin translation layer: every rule lives in the domain and application
// packages.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Anbarasu1710/projectflow-sub000/internal/application/service"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config        ServerConfig
	httpServer    *http.Server
	router        *gin.Engine
	onboarding    service.OnboardingService
	notifications service.NotificationService
	logger        Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	config ServerConfig,
	onboarding service.OnboardingService,
	notifications service.NotificationService,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:        config,
		router:        gin.New(),
		onboarding:    onboarding,
		notifications: notifications,
		logger:        logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/onboarding")
	{
		api.POST("/activate", s.handleActivate)
		api.POST("/preview", s.handlePreview)
		api.GET("/invitation", s.handleActiveInvitation)
		api.GET("/last-submission", s.handleLastSubmission)
		api.GET("/acknowledgements", s.handleAcknowledgements)

		session := api.Group("/sessions/:id")
		{
			session.GET("", s.handleSession)
			session.DELETE("", s.handleClose)
			session.PUT("/fields", s.handleSetField)
			session.POST("/advance", s.handleAdvance)
			session.POST("/retreat", s.handleRetreat)
			session.POST("/complete", s.handleComplete)
			session.POST("/items", s.handleAddItem)
			session.PUT("/items/:itemID", s.handleUpdateItem)
			session.DELETE("/items/:itemID", s.handleRemoveItem)
			session.POST("/attachments", s.handleAddAttachment)
		}
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the gin engine for tests
func (s *Server) Router() http.Handler {
	return s.router
}
