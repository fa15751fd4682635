package smoke

import "os"

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`Task Board Smoke Tool
=====================

Probes a running dashboard frontend: /health, /readyz, then concurrent
GET / requests while /health is polled.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the frontend (default "http://localhost:5000")
  -requests int
        Number of dashboard requests (default 200)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Log every dashboard request
  -help
        Show this help message

Exit status is 1 when /health fails at any point or a dashboard request
does not return a rendered page. Degraded pages count as rendered.
`)
}
