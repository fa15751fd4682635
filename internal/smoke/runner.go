package smoke

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/taskboard/pkg/logger"
)

// Run probes a running frontend: liveness, readiness, then concurrent
// dashboard load while /health is polled. It fails when the frontend is
// not live, when /health ever fails under load, or when any dashboard
// request does not come back as a rendered page.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get()
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting taskboard smoke run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout))

	c := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	code, _, err := c.status(ctx, healthPath)
	if err != nil {
		return stats, fmt.Errorf("%w: %w", ErrNotHealthy, err)
	}
	if code != http.StatusOK {
		return stats, fmt.Errorf("%w: status %d", ErrNotHealthy, code)
	}

	stats.Ready, stats.ReadyMessage, err = checkReady(ctx, c)
	if err != nil {
		log.Warn(ctx, "readiness probe failed", logger.Error(err))
	} else if !stats.Ready {
		log.Warn(ctx, "task manager not ready; expecting degraded pages", logger.String("message", stats.ReadyMessage))
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		pollHealth(ctx, c, stop, stats)
	}()

	loadDashboard(ctx, cfg, c, stats)
	close(stop)
	<-done

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.HealthFailures > 0 {
		return stats, fmt.Errorf("%w: %d of %d checks", ErrHealthUnderLoad, stats.HealthFailures, stats.HealthChecks)
	}
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrDashboard, stats.Failed, stats.Requests)
	}
	return stats, nil
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	var degradedRate, requestsPerSecond float64
	if stats.Requests > 0 {
		degradedRate = float64(stats.Degraded) / float64(stats.Requests) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.Requests) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("requests", stats.Requests),
		logger.Int("ok", stats.OK),
		logger.Int("empty", stats.Empty),
		logger.Int("degraded", stats.Degraded),
		logger.Int("failed", stats.Failed),
		logger.Int("healthChecks", stats.HealthChecks),
		logger.Int("healthFailures", stats.HealthFailures),
		logger.Bool("ready", stats.Ready),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("degradedRate", degradedRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
