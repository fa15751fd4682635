package manager

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel error kinds. Every error returned by Client wraps exactly one.
var (
	ErrUnreachable = errors.New("task manager unreachable")
	ErrTimeout     = errors.New("task manager timed out")
	ErrCanceled    = errors.New("task manager call canceled")
	ErrStatus      = errors.New("task manager returned an error status")
	ErrMalformed   = errors.New("task manager returned a malformed payload")
)

// Error describes a failed task manager call.
type Error struct {
	Op         string
	Kind       error
	StatusCode int               // set for ErrStatus
	Message    string            // backend "message" or "error" field, if any
	Fields     map[string]string // backend "fields" map on validation errors
	Err        error             // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (%d %s)", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindName returns a short label for err's kind, used in logs and metrics.
func KindName(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrCanceled):
		return "canceled"
	case errors.Is(err, ErrUnreachable):
		return "unreachable"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrStatus):
		var e *Error
		if errors.As(err, &e) && e.StatusCode >= http.StatusInternalServerError {
			return "status_5xx"
		}
		return "status_4xx"
	default:
		return "unknown"
	}
}
