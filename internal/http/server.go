// Package http provides the HTTP server and request middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	codecHTTP "github.com/allisson/publicid/internal/codec/http"
)

// ServerOptions configures the optional middleware applied to the server.
type ServerOptions struct {
	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int

	CORSEnabled      bool
	CORSAllowOrigins string

	// MetricsMiddleware records HTTP request metrics when non-nil.
	MetricsMiddleware gin.HandlerFunc
}

// Server represents the HTTP server.
type Server struct {
	server       *http.Server
	logger       *slog.Logger
	codecHandler *codecHTTP.CodecHandler
	readyCheck   func(ctx context.Context) error
	options      ServerOptions
}

// NewServer creates a new HTTP server.
//
// readyCheck reports whether the service can answer requests; it is consulted
// by the readiness endpoint and may be nil when there is nothing to check.
func NewServer(
	host string,
	port int,
	logger *slog.Logger,
	codecHandler *codecHTTP.CodecHandler,
	readyCheck func(ctx context.Context) error,
	options ServerOptions,
) *Server {
	s := &Server{
		logger:       logger,
		codecHandler: codecHandler,
		readyCheck:   readyCheck,
		options:      options,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      s.buildRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// buildRouter assembles the Gin engine with middleware and routes.
func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if s.options.MetricsMiddleware != nil {
		router.Use(s.options.MetricsMiddleware)
	}

	if corsMiddleware := createCORSMiddleware(
		s.options.CORSEnabled,
		s.options.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if s.options.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(s.options.RateLimitRPS, s.options.RateLimitBurst, s.logger))
	}

	codec := v1.Group("/codec")
	{
		codec.POST("/tokens/encode", s.codecHandler.EncodeTokenHandler)
		codec.POST("/tokens/decode", s.codecHandler.DecodeTokenHandler)
		codec.POST("/numeric/encode", s.codecHandler.EncodeNumericHandler)
		codec.POST("/numeric/decode", s.codecHandler.DecodeNumericHandler)
	}

	return router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the service can answer codec requests.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"codec": "ok"}

	if s.readyCheck != nil {
		if err := s.readyCheck(c.Request.Context()); err != nil {
			components["codec"] = "error"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"components": components,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
