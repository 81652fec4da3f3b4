package resilience

import (
	"errors"
	"fmt"
	"time"
)

// ErrCircuitOpen is matched by every CircuitOpenError.
var ErrCircuitOpen = errors.New("circuit open")

// CircuitOpenError is returned without invoking the operation while its breaker is open.
type CircuitOpenError struct {
	Service    string
	Operation  string
	RetryAfter time.Duration
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("circuit open for %s.%s, retry after %s", e.Service, e.Operation, e.RetryAfter.Round(time.Millisecond))
}

// Is makes errors.Is(err, ErrCircuitOpen) hold.
func (e *CircuitOpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}

// Retryable is always false: retrying an open circuit inside the same call only burns the backoff.
func (e *CircuitOpenError) Retryable() bool {
	return false
}

// RetryContext is the per-attempt state of a retry loop.
type RetryContext struct {
	Service    string
	Operation  string
	Attempt    int
	MaxRetries int
	LastErr    error
}
