package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/taskboard/internal/smoke"
	"github.com/okian/taskboard/pkg/logger"
)

// Default configuration constants.
const (
	defaultRequests = 200
	defaultWorkers  = 2 // multiplier for runtime.NumCPU()
	defaultTimeout  = 10 * time.Second
	defaultRunLimit = 5 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:5000", "Base URL of the frontend")
		requests = flag.Int("requests", defaultRequests, "Number of dashboard requests")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose  = flag.Bool("verbose", false, "Log every dashboard request")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunLimit)
	defer cancel()

	cfg := &smoke.Config{
		BaseURL:  *baseURL,
		Requests: *requests,
		Workers:  max(*workers, 1),
		Timeout:  *timeout,
		Verbose:  *verbose,
	}

	if _, err := smoke.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("smoke run failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
