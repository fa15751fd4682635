// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/taskboard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMetricsHandler serves the service's private Prometheus registry.
func NewMetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
