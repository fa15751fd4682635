// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	app "github.com/okian/taskboard/internal/app"
)

// ReadyDependencies defines the interface for readiness checks.
type ReadyDependencies interface {
	Ready(ctx context.Context) error
}

// ReadyHandler handles readiness probes.
type ReadyHandler struct {
	deps ReadyDependencies
}

// NewReadyHandler creates a new readiness handler.
func NewReadyHandler(deps ReadyDependencies) *ReadyHandler {
	return &ReadyHandler{deps: deps}
}

// HandleReady handles GET /readyz: 200 when the task manager's health
// endpoint answers 2xx, 503 otherwise.
func (h *ReadyHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Ready(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "backend_unavailable", app.Banner(err))
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ready"})
}
