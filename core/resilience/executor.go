package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Executor runs operations with bounded retries and per-(service, operation) circuit breakers.
// It is safe for concurrent use.
type Executor struct {
	logger  *zap.Logger
	retry   RetryConfig
	breaker BreakerOptions

	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
	random func() float64

	mu          sync.Mutex
	classifiers map[string]Classifier
	breakers    map[breakerKey]*breakerState
}

// Option configures an Executor.
type Option func(*Executor)

// WithRetryConfig sets the retry configuration used when a call passes none.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(e *Executor) { e.retry = cfg.withDefaults() }
}

// WithBreakerOptions sets the breaker options used when a call passes none.
func WithBreakerOptions(opts BreakerOptions) Option {
	return func(e *Executor) { e.breaker = opts.withDefaults() }
}

// WithClassifier registers or replaces the classification rule of a service.
func WithClassifier(service string, c Classifier) Option {
	return func(e *Executor) { e.classifiers[service] = c }
}

// WithClock replaces the wall clock used by the breakers.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

// WithSleeper replaces the backoff sleep. It must return ctx.Err() when ctx ends first.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(e *Executor) { e.sleep = sleep }
}

// WithRandom replaces the jitter source; it must return values in [0, 1).
func WithRandom(random func() float64) Option {
	return func(e *Executor) { e.random = random }
}

// New creates an Executor with the default retry and breaker settings.
func New(logger *zap.Logger, opts ...Option) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Executor{
		logger:      logger,
		retry:       DefaultRetryConfig(),
		breaker:     DefaultBreakerOptions(),
		now:         time.Now,
		sleep:       sleepContext,
		random:      rand.Float64,
		classifiers: defaultClassifiers(),
		breakers:    make(map[breakerKey]*breakerState),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Retry attempts fn up to MaxRetries+1 times. cfg nil uses the executor default.
// The last error is returned unchanged so typed errors survive.
func (e *Executor) Retry(ctx context.Context, service, operation string, fn func(ctx context.Context) error, cfg *RetryConfig) error {
	rc := e.retry
	if cfg != nil {
		rc = cfg.withDefaults()
	}

	rctx := RetryContext{Service: service, Operation: operation, MaxRetries: rc.MaxRetries}
	for rctx.Attempt = 1; ; rctx.Attempt++ {
		if err := ctx.Err(); err != nil {
			if rctx.LastErr != nil {
				return rctx.LastErr
			}
			return err
		}

		err := runAttempt(ctx, fn, rc.AttemptTimeout)
		if err == nil {
			if rctx.Attempt > 1 {
				e.logger.Info("Operation succeeded after retry", rctx.fields()...)
			}
			return nil
		}
		rctx.LastErr = err

		// A cancelled caller must not keep the loop alive.
		if ctx.Err() != nil {
			return err
		}

		retryable := e.IsRetryable(service, err)
		if !retryable || rctx.Attempt > rc.MaxRetries {
			e.logger.Error("Operation failed",
				append(rctx.fields(), zap.Bool("retryable", retryable))...)
			return err
		}

		delay := backoffDelay(rc, rctx.Attempt, e.random)
		e.logger.Warn("Retrying operation", append(rctx.fields(), zap.Duration("delay", delay))...)
		if err := e.sleep(ctx, delay); err != nil {
			return rctx.LastErr
		}
	}
}

// Do is Retry for operations producing a value.
func Do[T any](ctx context.Context, e *Executor, service, operation string, fn func(ctx context.Context) (T, error), cfg *RetryConfig) (T, error) {
	var out T
	err := e.Retry(ctx, service, operation, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	}, cfg)
	return out, err
}

// backoffDelay is min(base * expBase^(attempt-1), max), optionally scaled into [0.75, 1.25).
func backoffDelay(rc RetryConfig, attempt int, random func() float64) time.Duration {
	d := float64(rc.BaseDelay) * math.Pow(rc.ExponentialBase, float64(attempt-1))
	if d > float64(rc.MaxDelay) {
		d = float64(rc.MaxDelay)
	}
	if rc.Jitter {
		d *= 0.75 + random()*0.5
	}
	return time.Duration(d)
}

func runAttempt(ctx context.Context, fn func(ctx context.Context) error, timeout time.Duration) error {
	if timeout <= 0 {
		return fn(ctx)
	}
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(actx)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (r RetryContext) fields() []zap.Field {
	return []zap.Field{
		zap.String("service", r.Service),
		zap.String("operation", r.Operation),
		zap.Int("attempt", r.Attempt),
		zap.Int("max_retries", r.MaxRetries),
		zap.Error(r.LastErr),
	}
}
