// Package resilience wraps outbound calls in bounded retries and circuit breakers.
//
// Every call to object storage, the search index or a card catalog API goes through
// an Executor. The executor knows nothing about what an operation does; it only sees
// its error.
//
// # Retry
//
// Retry attempts an operation up to MaxRetries+1 times, sleeping
// min(BaseDelay * ExponentialBase^(attempt-1), MaxDelay) between attempts, with
// optional ±25% jitter. Whether a failure is retried is decided by:
//
//  1. an error implementing Retryable() bool (preferred, set where the error is built)
//  2. context cancellation (never) and deadlines or net timeouts (always)
//  3. the per-service message rules (object-storage, identity, search, wide-column)
//  4. the default rule: 5xx or network failures
//
// # Circuit Breaker
//
// Call adds one breaker per (service, operation). After FailureThreshold consecutive
// failures the breaker opens and rejects calls with a CircuitOpenError until
// ResetTimeout has elapsed. The next call is then admitted as the single half-open
// probe; success closes the breaker, failure reopens it.
//
// # Usage
//
//	exec := resilience.New(logger, resilience.WithRetryConfig(cfg.Resilience.Retry()))
//	cards, err := resilience.Guard(ctx, exec, "scryfall", "search", fetch, nil)
package resilience
