// Package server exposes the comparison views as a JSON API for web shells.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/kurabe/internal/config"
	"github.com/hyperjump/kurabe/internal/session"
)

// Server is the HTTP server for the Kurabe API.
type Server struct {
	session *session.Session
	config  *config.ServerConfig
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server around an existing comparison session.
func NewServer(sess *session.Session, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		session: sess,
		config:  cfg,
		logger:  logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/page/{n}", s.handlePage)
	r.Get("/api/v1/charts", s.handleCharts)
	r.Get("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Handler returns the router without starting a listener. Used by tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/page/{n}", s.handlePage)
	r.Get("/api/v1/charts", s.handleCharts)
	r.Get("/health", s.handleHealth)
	return r
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
