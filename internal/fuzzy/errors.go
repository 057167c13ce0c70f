package fuzzy

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNotConfigured        = errors.New("engine is not configured")
	ErrUnknownVariable      = errors.New("unknown input variable")
	ErrMissingInput         = errors.New("missing input value")
	ErrInputCount           = errors.New("wrong number of input values")
)

// ConfigurationError is returned while building an engine,
// it always matches ErrInvalidConfiguration.
type ConfigurationError struct {
	Item   string
	Reason string
}

func newConfigurationError(item string, reason string) *ConfigurationError {
	return &ConfigurationError{Item: item, Reason: reason}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Item, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}
