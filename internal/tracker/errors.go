package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by operations on a closed Tracker.
	ErrClosed = errors.New("tracker closed")

	// ErrSuperseded reports an AI result discarded because a newer request
	// of the same kind was started while it was in flight.
	ErrSuperseded = errors.New("superseded by a newer request")

	// ErrNoProvider is the default cause of a ConfigError.
	ErrNoProvider = errors.New("no content provider configured")
)

// ConfigError is returned by AI-backed operations when no content
// provider is available. Manual tracking keeps working.
type ConfigError struct {
	Feature string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Feature, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
