package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL  string        // Base URL of the frontend
	Requests int           // Number of dashboard requests to send
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Log every request
}

// Stats holds run statistics.
type Stats struct {
	Requests       int
	OK             int
	Empty          int
	Degraded       int
	Failed         int
	HealthChecks   int
	HealthFailures int
	Ready          bool
	ReadyMessage   string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
