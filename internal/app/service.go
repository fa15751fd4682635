// Package service provides the dashboard service that sits between the HTTP
// handlers and the task manager client.
package service

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/okian/taskboard/internal/adapters/manager"
	"github.com/okian/taskboard/internal/domain/model"
	"github.com/okian/taskboard/pkg/logger"
	"github.com/okian/taskboard/pkg/metrics"
)

// TaskLister fetches the current task list from the backend.
type TaskLister interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
}

// HealthChecker reports whether the backend is healthy.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Backend is what the task manager client provides.
type Backend interface {
	TaskLister
	HealthChecker
}

// Service builds dashboard views. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	backend Backend
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service backed by backend.
func New(backend Backend, opts ...Option) *Service {
	s := &Service{
		backend: backend,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dashboard makes exactly one backend call and maps its outcome to a View.
// It never returns an error: failures become a degraded view.
func (s *Service) Dashboard(ctx context.Context) View {
	start := time.Now()
	tasks, err := s.backend.ListTasks(ctx)
	view := BuildView(tasks, err)

	if err != nil {
		s.logBackendFailure(ctx, "task list unavailable", err, time.Since(start))
	}
	metrics.RecordDashboardRender(string(view.State), len(view.Tasks))
	return view
}

// Ready reports backend health. The returned error, if any, is suitable
// for Banner.
func (s *Service) Ready(ctx context.Context) error {
	start := time.Now()
	err := s.backend.Health(ctx)
	if err != nil {
		s.logBackendFailure(ctx, "task manager not ready", err, time.Since(start))
	}
	return err
}

func (s *Service) logBackendFailure(ctx context.Context, msg string, err error, elapsed time.Duration) {
	kind := manager.KindName(err)
	fields := []logger.Field{
		logger.String("kind", kind),
		logger.String("request_id", middleware.GetReqID(ctx)),
		logger.Duration("elapsed", elapsed),
		logger.Error(err),
	}
	if code := statusCode(err); code != 0 {
		fields = append(fields, logger.Int("status_code", code))
	}

	// A caller that went away is not an operational problem.
	if kind == "canceled" {
		s.logger.Debug(ctx, msg, fields...)
		return
	}
	s.logger.Warn(ctx, msg, fields...)
}
