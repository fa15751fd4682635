package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/taskboard/internal/adapters/manager"
)

// User-facing banner texts.
const (
	MsgTimeout      = "The request timed out. Please try again."
	MsgNetwork      = "Network issue detected. Check your internet connection."
	MsgNotFound     = "The requested item was not found."
	MsgUnauthorized = "You don't have permission to perform this action."
	MsgValidation   = "Invalid input provided. Please check your data."
	MsgServer       = "A server error occurred. Please try again later."
	MsgMalformed    = "The task manager returned an unreadable response."
	MsgUnexpected   = "Unexpected error while loading tasks."
)

// Banner maps a backend error to the text shown on the degraded view.
func Banner(err error) string {
	var e *manager.Error
	switch {
	case err == nil:
		return ""
	case errors.Is(err, manager.ErrTimeout):
		return MsgTimeout
	case errors.Is(err, manager.ErrUnreachable), errors.Is(err, manager.ErrCanceled):
		return MsgNetwork
	case errors.Is(err, manager.ErrMalformed):
		return MsgMalformed
	case !errors.As(err, &e) || !errors.Is(err, manager.ErrStatus):
		return MsgUnexpected
	}

	switch code := e.StatusCode; {
	case code == http.StatusNotFound:
		return MsgNotFound
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return MsgUnauthorized
	case code == http.StatusBadRequest:
		if len(e.Fields) > 0 {
			return "Invalid input: " + manager.FieldList(e.Fields)
		}
		return MsgValidation
	case code >= http.StatusInternalServerError:
		return MsgServer
	case e.Message != "":
		return e.Message
	default:
		return fmt.Sprintf("Unexpected response from the task manager (status %d).", code)
	}
}

func statusCode(err error) int {
	var e *manager.Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
