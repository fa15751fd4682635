package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/taskboard/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Get performs a GET request tagged with a fresh request id.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(reqIDHeader, "smoke-"+uuid.NewString())
	return c.client.Do(req)
}

// status performs a GET and returns the status code, discarding the body.
func (c *HTTPClient) status(ctx context.Context, path string) (int, http.Header, error) {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, resp.Header, nil
}

// checkReady reports whether /readyz answers 200 and, when it does not,
// the message from its JSON error body.
func checkReady(ctx context.Context, c *HTTPClient) (bool, string, error) {
	resp, err := c.Get(ctx, readyPath)
	if err != nil {
		return false, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return true, "", nil
	}
	var payload struct {
		Message string `json:"message"`
	}
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		return false, http.StatusText(resp.StatusCode), nil
	}
	return false, payload.Message, nil
}

// loadDashboard sends cfg.Requests GET / requests through a worker pool
// and counts the dashboard state of each answer.
func loadDashboard(ctx context.Context, cfg *Config, c *HTTPClient, stats *Stats) {
	log := logger.Get()

	var ok, empty, degraded, failed int64
	jobs := make(chan int, cfg.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for n := range jobs {
				if ctx.Err() != nil {
					return
				}
				code, header, err := c.status(ctx, rootPath)
				state := ""
				if err == nil {
					state = header.Get(stateHeader)
				}
				switch {
				case err != nil || code != http.StatusOK:
					atomic.AddInt64(&failed, 1)
				case state == stateOK:
					atomic.AddInt64(&ok, 1)
				case state == stateEmpty:
					atomic.AddInt64(&empty, 1)
				case state == stateDegraded:
					atomic.AddInt64(&degraded, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
				if cfg.Verbose {
					log.Debug(ctx, "dashboard request",
						logger.Int("worker", workerID),
						logger.Int("n", n),
						logger.Int("status", code),
						logger.String("state", state),
						logger.Error(err))
				}
			}
		}(i)
	}

	go func() {
		defer close(jobs)
		for n := 0; n < cfg.Requests; n++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- n:
			}
		}
	}()

	wg.Wait()

	stats.OK = int(atomic.LoadInt64(&ok))
	stats.Empty = int(atomic.LoadInt64(&empty))
	stats.Degraded = int(atomic.LoadInt64(&degraded))
	stats.Failed = int(atomic.LoadInt64(&failed))
	stats.Requests = stats.OK + stats.Empty + stats.Degraded + stats.Failed
}

// pollHealth hits /health until stop is closed and counts non-200 answers.
func pollHealth(ctx context.Context, c *HTTPClient, stop <-chan struct{}, stats *Stats) {
	ticker := time.NewTicker(HealthPollInterval)
	defer ticker.Stop()

	check := func() {
		stats.HealthChecks++
		code, _, err := c.status(ctx, healthPath)
		if err != nil || code != http.StatusOK {
			stats.HealthFailures++
		}
	}

	check()
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
