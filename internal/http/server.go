// Package http provides the HTTP gateway: router setup, middleware and health endpoints.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	assetHTTP "github.com/allisson/drive-proxy/internal/asset/http"
	authHTTP "github.com/allisson/drive-proxy/internal/auth/http"
	authUseCase "github.com/allisson/drive-proxy/internal/auth/usecase"
	"github.com/allisson/drive-proxy/internal/config"
	"github.com/allisson/drive-proxy/internal/metrics"
	oauthHTTP "github.com/allisson/drive-proxy/internal/oauth/http"
)

const readinessCheckTimeout = 5 * time.Second

// ReadinessCheck reports whether a dependency can currently serve requests.
type ReadinessCheck func(ctx context.Context) error

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
	checks map[string]ReadinessCheck
}

// NewServer creates a new HTTP server. writeTimeout bounds a whole response, so it has to
// cover the slowest asset stream that should be allowed to finish.
func NewServer(
	checks map[string]ReadinessCheck,
	host string,
	port int,
	writeTimeout time.Duration,
	logger *slog.Logger,
) *Server {
	return &Server{
		logger: logger,
		checks: checks,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// SetupRouter registers middleware and routes.
// ctx bounds background work started by middleware (rate limiter cleanup).
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	tokenUseCase authUseCase.TokenUseCase,
	assetHandler *assetHTTP.AssetHandler,
	redirectHandler *oauthHTTP.RedirectHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	var rateLimited []gin.HandlerFunc
	if cfg.RateLimitEnabled {
		rateLimited = append(rateLimited,
			authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	gateway := router.Group("/")
	gateway.Use(SecurityHeadersMiddleware(true))
	gateway.Use(rateLimited...)
	{
		gateway.POST("/generate-url",
			authHTTP.AuthenticationMiddleware(tokenUseCase, s.logger),
			assetHandler.GenerateURLHandler,
		)
		gateway.GET("/asset", assetHandler.GetAssetHandler)
	}

	// The OAuth popup needs window.opener, so COOP is left off.
	router.GET("/auth", SecurityHeadersMiddleware(false), redirectHandler.AuthorizeHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler runs every readiness check and reports each component.
func (s *Server) readinessHandler(c *gin.Context) {
	components := make(map[string]string, len(s.checks))
	ready := true

	for name, check := range s.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessCheckTimeout)
		err := check(ctx)
		cancel()

		if err != nil {
			ready = false
			components[name] = "error"
			s.logger.Warn("readiness check failed", slog.String("component", name), slog.Any("error", err))
			continue
		}
		components[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
