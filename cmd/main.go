package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/taskboard/internal/adapters/http/api"
	"github.com/okian/taskboard/internal/adapters/http/swagger"
	"github.com/okian/taskboard/internal/adapters/manager"
	app "github.com/okian/taskboard/internal/app"
	"github.com/okian/taskboard/internal/config"
	"github.com/okian/taskboard/pkg/logger"
	"github.com/okian/taskboard/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	writeTimeoutSlack         = 5 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> yaml -> dotenv -> env). Bad config is fatal.
	cfg, err := config.Load(ctx)
	if err != nil {
		// logger is not available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = logger.Sync() }()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		os.Stderr.WriteString("invalid log level: " + err.Error() + "\n")
		return 1
	}
	log := logger.Get()

	srv := newHTTPServer(ctx, cfg, log)

	go startSystemMetricsUpdater(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", srv.Addr),
			logger.String("manager", cfg.ManagerBaseURL()),
			logger.Duration("manager_timeout", cfg.ManagerTimeout()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			return 1
		}
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return 1
	}

	log.Info(ctx, "server stopped")
	return 0
}

// newHTTPServer wires the task manager client, the dashboard service and
// every route into an http.Server listening on the configured port.
func newHTTPServer(ctx context.Context, cfg *config.Config, log logger.Logger) *http.Server {
	client := manager.New(cfg.ManagerBaseURL(),
		manager.WithTimeout(cfg.ManagerTimeout()),
		manager.WithTasksPath(cfg.ManagerTasksPath),
		manager.WithHealthPath(cfg.ManagerHealthPath),
		manager.WithLogger(log.Named("manager")),
	)
	svc := app.New(client, app.WithLogger(log.Named("dashboard")))

	mux := http.NewServeMux()
	swagger.Register(ctx, mux)

	apiServer := api.NewServer(svc, api.WithLogger(log.Named("http")))
	apiServer.Register(ctx, mux)

	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           apiServer.Handler(mux),
		ReadTimeout:       readTimeout,
		WriteTimeout:      cfg.ManagerTimeout() + writeTimeoutSlack,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// startSystemMetricsUpdater refreshes runtime gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
