// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - New returns a Config populated with defaults.
//   - Load layers a YAML file, a dotenv file and the process environment on
//     top of the defaults and validates the result.
//   - Errors wrap ErrInvalidConfig or ErrLoadConfig.
package config

import (
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config contains process configuration. It is read once at startup and
// never mutated afterwards.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// ServerPort is the port this frontend listens on.
	ServerPort int `koanf:"server_port"`

	// ManagerHost and ManagerPort locate the task manager API.
	ManagerHost string `koanf:"manager_host"`
	ManagerPort int    `koanf:"manager_port"`

	// ManagerAPIURL overrides ManagerHost/ManagerPort when set,
	// e.g. "https://tasks.internal/".
	ManagerAPIURL string `koanf:"manager_api_url"`

	// ManagerTasksPath and ManagerHealthPath are relative to the base URL.
	ManagerTasksPath  string `koanf:"manager_tasks_path"`
	ManagerHealthPath string `koanf:"manager_health_path"`

	// ManagerTimeoutMS bounds every backend call.
	ManagerTimeoutMS int `koanf:"manager_timeout_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		ServerPort:        5000,
		ManagerHost:       "localhost",
		ManagerPort:       8080,
		ManagerTasksPath:  "api/tasks",
		ManagerHealthPath: "actuator/health",
		ManagerTimeoutMS:  5000,
	}
}

// Addr is the HTTP listen address, e.g. ":5000".
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.ServerPort)
}

// ManagerBaseURL is the task manager base URL without a trailing slash.
func (c *Config) ManagerBaseURL() string {
	if u := strings.TrimSpace(c.ManagerAPIURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	return "http://" + net.JoinHostPort(c.ManagerHost, strconv.Itoa(c.ManagerPort))
}

// ManagerTimeout is ManagerTimeoutMS as a duration.
func (c *Config) ManagerTimeout() time.Duration {
	return time.Duration(c.ManagerTimeoutMS) * time.Millisecond
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	if err := checkPort("server_port", c.ServerPort); err != nil {
		return err
	}
	if strings.TrimSpace(c.ManagerAPIURL) == "" {
		if strings.TrimSpace(c.ManagerHost) == "" {
			return invalidf("manager_host", "must not be empty")
		}
		if err := checkPort("manager_port", c.ManagerPort); err != nil {
			return err
		}
	} else {
		u, err := url.Parse(strings.TrimSpace(c.ManagerAPIURL))
		if err != nil {
			return invalidf("manager_api_url", "is not a URL: %v", err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalidf("manager_api_url", "must be an absolute http(s) URL, got %q", c.ManagerAPIURL)
		}
	}
	if strings.Trim(c.ManagerTasksPath, "/ ") == "" {
		return invalidf("manager_tasks_path", "must not be empty")
	}
	if strings.Trim(c.ManagerHealthPath, "/ ") == "" {
		return invalidf("manager_health_path", "must not be empty")
	}
	if c.ManagerTimeoutMS <= 0 {
		return invalidf("manager_timeout_ms", "must be positive, got %d", c.ManagerTimeoutMS)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return invalidf("log_level", "unknown level %q", c.LogLevel)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "text", "json":
	default:
		return invalidf("log_format", "must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func checkPort(key string, port int) error {
	if port < 1 || port > 65535 {
		return invalidf(key, "must be in 1..65535, got %d", port)
	}
	return nil
}
