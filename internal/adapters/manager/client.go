// Package manager is the HTTP client for the Task Manager REST API.
package manager

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/okian/taskboard/internal/domain/model"
	"github.com/okian/taskboard/pkg/logger"
	"github.com/okian/taskboard/pkg/metrics"
)

const (
	// DefaultTimeout bounds a call when WithTimeout is not given.
	DefaultTimeout = 5 * time.Second

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes = 4 << 20

	// RequestIDHeader carries the inbound request id to the backend.
	RequestIDHeader = "X-Request-ID"

	defaultTasksPath  = "api/tasks"
	defaultHealthPath = "actuator/health"

	opListTasks = "list_tasks"
	opHealth    = "health"
)

// Client calls the task manager. It is safe for concurrent use.
type Client struct {
	baseURL    string
	tasksPath  string
	healthPath string
	timeout    time.Duration
	http       *http.Client
	logger     logger.Logger
}

// New creates a client for the task manager at baseURL,
// e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tasksPath:  defaultTasksPath,
		healthPath: defaultHealthPath,
		timeout:    DefaultTimeout,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c
}

// TasksURL is the absolute task listing URL.
func (c *Client) TasksURL() string { return c.url(c.tasksPath) }

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// ListTasks fetches every task in backend order. The backend may answer
// with a bare JSON array or with {"data": [...]}.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	body, err := c.get(ctx, opListTasks, c.tasksPath)
	if err != nil {
		return nil, err
	}
	tasks, err := decodeTasks(body)
	if err != nil {
		err = &Error{Op: opListTasks, Kind: ErrMalformed, Err: err}
		c.logger.Debug(ctx, "task list decode failed", logger.Error(err))
		return nil, err
	}
	return tasks, nil
}

// Health calls the backend health endpoint; nil means 2xx.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.get(ctx, opHealth, c.healthPath)
	return err
}

func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.url(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &Error{Op: op, Kind: ErrUnreachable, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID(ctx))

	start := time.Now()
	body, err := c.do(req, op)
	elapsed := time.Since(start)

	metrics.RecordBackendCall(op, KindName(err), float64(elapsed.Milliseconds()))
	c.logger.Debug(ctx, "task manager call",
		logger.String("op", op),
		logger.String("url", target),
		logger.String("outcome", KindName(err)),
		logger.Duration("elapsed", elapsed),
	)
	return body, err
}

func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Kind: transportKind(req.Context(), err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, &Error{Op: op, Kind: transportKind(req.Context(), err), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := &Error{Op: op, Kind: ErrStatus, StatusCode: resp.StatusCode}
		e.Message, e.Fields = parseErrorBody(body)
		return nil, e
	}
	if len(body) > MaxBodyBytes {
		return nil, &Error{Op: op, Kind: ErrMalformed, Err: fmt.Errorf("body exceeds %d bytes", MaxBodyBytes)}
	}
	return body, nil
}

// transportKind classifies a failure that happened before a response
// status was available.
func transportKind(ctx context.Context, err error) error {
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.As(err, &ne) && ne.Timeout():
		return ErrTimeout
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		return ErrCanceled
	default:
		return ErrUnreachable
	}
}

func decodeTasks(body []byte) ([]model.Task, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty body")
	}

	switch trimmed[0] {
	case '[':
		var tasks []model.Task
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return nil, err
		}
		return nonNil(tasks), nil
	case '{':
		var wrapped struct {
			Data *[]model.Task `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, err
		}
		if wrapped.Data == nil {
			return nil, errors.New(`object without a "data" array`)
		}
		return nonNil(*wrapped.Data), nil
	default:
		return nil, fmt.Errorf("expected a JSON array or object, got %q", trimmed[0])
	}
}

func nonNil(tasks []model.Task) []model.Task {
	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}

// parseErrorBody extracts "message"/"error" and "fields" from a JSON
// error payload. Non-JSON bodies yield nothing.
func parseErrorBody(body []byte) (string, map[string]string) {
	var payload struct {
		Message string         `json:"message"`
		Error   string         `json:"error"`
		Fields  map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", nil
	}

	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}
	if len(payload.Fields) == 0 {
		return msg, nil
	}
	fields := make(map[string]string, len(payload.Fields))
	for k, v := range payload.Fields {
		fields[k] = fmt.Sprint(v)
	}
	return msg, fields
}

// FieldList renders a fields map as "k: v; k2: v2" in key order.
func FieldList(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + fields[k]
	}
	return strings.Join(parts, "; ")
}

// requestID returns the inbound request id set by chi's RequestID
// middleware, or a fresh one.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
