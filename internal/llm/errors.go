package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrMissingCredential means the selected provider has no API key. The
// tracker keeps working with content features disabled.
var ErrMissingCredential = errors.New("missing LLM API key")

// ErrRateLimit is a 429. RetryAfter is zero when the provider sent no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse carries a reply that failed to parse or validate.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string { return fmt.Sprintf("invalid LLM response: %v", e.Err) }

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers 5xx answers and transport failures.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return "LLM provider unavailable: " + e.Err.Error()
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrUnauthorized is a 401 or 403. Never retried.
type ErrUnauthorized struct {
	Err error
}

func (e *ErrUnauthorized) Error() string { return fmt.Sprintf("LLM credentials rejected: %v", e.Err) }

func (e *ErrUnauthorized) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is a reply cut at MaxTokens before it parsed.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("LLM response truncated at max tokens (%d bytes received)", len(e.Content))
}

// classifyStatus turns the status of a failed SDK call into one of the
// error types above. h may be nil.
func classifyStatus(status int, h http.Header, err error) error {
	switch status {
	case http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter(h), Err: err}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ErrUnauthorized{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
