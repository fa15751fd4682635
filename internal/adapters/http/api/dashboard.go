// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	app "github.com/okian/taskboard/internal/app"
	"github.com/okian/taskboard/pkg/logger"
)

// DashboardDependencies defines the interface for building the page.
type DashboardDependencies interface {
	Dashboard(ctx context.Context) app.View
}

// StateHeader reports which view was rendered: ok, empty or degraded.
const StateHeader = "X-Dashboard-State"

// dashboardHandler renders the task dashboard.
type dashboardHandler struct {
	deps   DashboardDependencies
	tmpl   *template.Template
	logger logger.Logger
}

// newDashboardHandler creates a new dashboard handler.
func newDashboardHandler(deps DashboardDependencies, tmpl *template.Template, l logger.Logger) *dashboardHandler {
	return &dashboardHandler{deps: deps, tmpl: tmpl, logger: l}
}

// HandleDashboard handles GET / requests. Backend failures render the
// degraded view with status 200; only a template failure yields 500.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	view := h.deps.Dashboard(r.Context())

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "dashboard.html", view); err != nil {
		h.logger.Error(r.Context(), "dashboard render failed",
			logger.String("request_id", middleware.GetReqID(r.Context())),
			logger.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(StateHeader, string(view.State))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
