// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	app "github.com/okian/taskboard/internal/app"
	"github.com/okian/taskboard/pkg/logger"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	// Dashboard fetches the task list once and returns the view to render.
	Dashboard(ctx context.Context) app.View

	// Ready checks the task manager's health endpoint.
	Ready(ctx context.Context) error
}

// Server wires HTTP routes for the frontend.
type Server struct {
	healthHandler    *HealthHandler
	readyHandler     *ReadyHandler
	metricsHandler   http.Handler
	dashboardHandler *dashboardHandler
	logger           logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the logger used for request logs.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		healthHandler:  NewHealthHandler(),
		readyHandler:   NewReadyHandler(deps),
		metricsHandler: NewMetricsHandler(),
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dashboardHandler = newDashboardHandler(deps, dashboardTemplate, s.logger)
	return s
}

// Register attaches all HTTP routes to mux. Unknown paths get 404 and known
// paths with the wrong method get 405 from the mux itself.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("GET /readyz", MetricsMiddleware(s.readyHandler.HandleReady, "readyz"))
	mux.Handle("GET /metrics", s.metricsHandler)
	mux.HandleFunc("GET /{$}", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
}

// Handler wraps mux with the shared middleware stack: request ids,
// client IP resolution, request logging and panic recovery.
func (s *Server) Handler(mux *http.ServeMux) http.Handler {
	return chi.Chain(
		middleware.RequestID,
		middleware.RealIP,
		LoggingMiddleware(s.logger),
		middleware.Recoverer,
	).Handler(mux)
}

// NewHandler builds a mux, registers every route and wraps it.
func NewHandler(ctx context.Context, deps Dependencies, opts ...Option) http.Handler {
	s := NewServer(deps, opts...)
	mux := http.NewServeMux()
	s.Register(ctx, mux)
	return s.Handler(mux)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// dashboardTemplate is parsed once; it is immutable afterwards.
var dashboardTemplate = template.Must(template.ParseFS(templatesFS, "templates/*.html"))
