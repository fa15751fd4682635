package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// invalidf reports a validation failure for key.
func invalidf(key, format string, args ...any) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidConfig, key, fmt.Sprintf(format, args...))
}

// loadErr wraps a provider or unmarshal failure for source.
func loadErr(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrLoadConfig, source, err)
}
