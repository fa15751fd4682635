package smoke

import "errors"

// Errors returned by Run.
var (
	ErrNotHealthy      = errors.New("frontend health check failed")
	ErrHealthUnderLoad = errors.New("health endpoint failed while the dashboard was under load")
	ErrDashboard       = errors.New("dashboard requests failed")
)
