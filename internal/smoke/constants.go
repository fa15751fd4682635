package smoke

import "time"

// Frontend routes and headers probed by the tool.
const (
	healthPath  = "/health"
	readyPath   = "/readyz"
	rootPath    = "/"
	stateHeader = "X-Dashboard-State"
	reqIDHeader = "X-Request-Id"
)

// Dashboard states reported by the frontend.
const (
	stateOK       = "ok"
	stateEmpty    = "empty"
	stateDegraded = "degraded"
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
	HealthPollInterval      = 50 * time.Millisecond
	PercentageMultiplier    = 100
)
