package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ProviderError is a failed upstream call. StatusCode is 0 when no response was received.
type ProviderError struct {
	Provider   string
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 && e.Err == nil {
		if e.Body != "" {
			return fmt.Sprintf("%s %s: upstream status %d: %s", e.Provider, e.Operation, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("%s %s: upstream status %d", e.Provider, e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Operation, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Retryable is true for transport faults, 408, 429 and 5xx. Responses that arrived but
// could not be decoded are terminal.
func (e *ProviderError) Retryable() bool {
	if e.StatusCode == 0 {
		return e.Err != nil && !errors.Is(e.Err, context.Canceled)
	}
	if e.Err != nil {
		return false
	}
	switch {
	case e.StatusCode == http.StatusRequestTimeout, e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= 500:
		return true
	}
	return false
}

// StatusOf returns the upstream HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.StatusCode
	}
	return 0
}
