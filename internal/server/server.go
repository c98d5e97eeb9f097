package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alse-sym/automated-ai-agent-on-jira/internal/config"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/handlers"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/logger"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	handler    *handlers.Handler
	middleware *middleware.Middleware
	log        *logger.Logger
}

// New creates a new HTTP server
func New(handler *handlers.Handler, log *logger.Logger) *Server {
	return &Server{
		handler:    handler,
		middleware: middleware.New(log),
		log:        log,
	}
}

// Start starts the HTTP server
func (s *Server) Start(cfg *config.Config) error {
	mux := http.NewServeMux()

	// Register routes
	mux.HandleFunc("/health", s.handler.HealthCheck)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/webhook/implement", s.handler.ImplementWebhook)
	mux.HandleFunc("/webhook/research", s.handler.ResearchWebhook)

	// Apply middleware chain
	handler := s.middleware.Recovery(mux)
	handler = s.middleware.Logging(handler)
	handler = s.middleware.Security(handler)
	handler = s.middleware.RateLimit(handler)
	handler = s.middleware.RequestID(handler)

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	s.log.Infof("HTTP server listening on %s", cfg.Server.Address())

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("HTTP server error", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.log.Info("HTTP server shutdown complete")
	return nil
}
