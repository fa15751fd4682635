package manager

import (
	"net/http"
	"time"

	"github.com/okian/taskboard/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout bounds every call. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTasksPath sets the task listing path relative to the base URL.
func WithTasksPath(p string) Option {
	return func(c *Client) {
		if p != "" {
			c.tasksPath = p
		}
	}
}

// WithHealthPath sets the health path relative to the base URL.
func WithHealthPath(p string) Option {
	return func(c *Client) {
		if p != "" {
			c.healthPath = p
		}
	}
}

// WithLogger sets the logger used for per-call debug output.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
