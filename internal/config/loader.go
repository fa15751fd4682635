package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables that point at optional config files.
const (
	EnvConfigFile = "TASKBOARD_CONFIG"
	EnvDotenvFile = "TASKBOARD_ENV_FILE"

	defaultDotenvFile = ".env"
)

// keys lists every koanf key that may be set from the environment. The env
// var name is the upper-cased key, e.g. SERVER_PORT -> server_port.
var keys = map[string]struct{}{
	"log_level":           {},
	"log_format":          {},
	"server_port":         {},
	"manager_host":        {},
	"manager_port":        {},
	"manager_api_url":     {},
	"manager_tasks_path":  {},
	"manager_health_path": {},
	"manager_timeout_ms":  {},
}

// envKey maps an environment variable name to its config key, or "" when
// the variable is not a recognised option.
func envKey(name string) string {
	k := strings.ToLower(strings.TrimSpace(name))
	if _, ok := keys[k]; !ok {
		return ""
	}
	return k
}

// Load builds a Config by layering defaults, optional files, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. YAML file if TASKBOARD_CONFIG is set
//  3. dotenv file (TASKBOARD_ENV_FILE, default ".env") if it exists
//  4. process environment (SERVER_PORT, MANAGER_HOST, ...)
//
// Empty environment values are treated as unset.
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, loadErr(path, err)
		}
	}

	if err := loadDotenv(k); err != nil {
		return nil, err
	}

	envProvider := env.ProviderWithValue("", ".", func(name, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return envKey(name), value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, loadErr("environment", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, loadErr("unmarshal", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotenv copies recognised keys from the dotenv file into k. A missing
// default file is not an error; a missing explicitly configured one is.
func loadDotenv(k *koanf.Koanf) error {
	path, explicit := os.LookupEnv(EnvDotenvFile)
	if !explicit || path == "" {
		path, explicit = defaultDotenvFile, false
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return loadErr(path, err)
	}

	dk := koanf.New(".")
	if err := dk.Load(file.Provider(path), dotenv.Parser()); err != nil {
		return loadErr(path, err)
	}
	for name, value := range dk.All() {
		key := envKey(name)
		if key == "" {
			continue
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		if err := k.Set(key, value); err != nil {
			return loadErr(path, err)
		}
	}
	return nil
}
