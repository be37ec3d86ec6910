// Package rest exposes the playlist analyzer over HTTP.
package rest

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/osa030/playtime/internal/app/analyzer"
	"github.com/osa030/playtime/internal/app/report"
)

// Analyzer builds playlist reports.
type Analyzer interface {
	Analyze(ctx context.Context, req analyzer.Request) (*report.Report, error)
}

// Server serves the HTTP API.
type Server struct {
	analyzer  Analyzer
	validator *analyzer.Validator
	timeout   time.Duration
}

// NewServer creates a new Server. A zero timeout disables the per-request deadline.
func NewServer(a Analyzer, v *analyzer.Validator, timeout time.Duration) *Server {
	return &Server{
		analyzer:  a,
		validator: v,
		timeout:   timeout,
	}
}

// Router returns the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(recoverer)
	if s.timeout > 0 {
		r.Use(deadline(s.timeout))
	}

	r.Get("/health", s.handleHealth)
	r.Get("/api/playlists", s.handlePlaylists)

	return r
}
