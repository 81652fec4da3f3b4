package resilience

import "time"

// RetryConfig controls Executor.Retry.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps the exponential delay before jitter.
	MaxDelay time.Duration
	// ExponentialBase multiplies the delay on each further retry.
	ExponentialBase float64
	// Jitter perturbs each delay by up to ±25%.
	Jitter bool
	// AttemptTimeout bounds a single attempt. Zero means no per-attempt bound.
	AttemptTimeout time.Duration
}

// DefaultRetryConfig returns {maxRetries=3, baseDelay=1s, maxDelay=10s, exponentialBase=2, jitter=true}.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		BaseDelay:       time.Second,
		MaxDelay:        10 * time.Second,
		ExponentialBase: 2,
		Jitter:          true,
	}
}

// withDefaults fills unset delay parameters. MaxRetries=0 is kept: it means a single attempt.
func (c RetryConfig) withDefaults() RetryConfig {
	d := DefaultRetryConfig()
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = d.BaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = d.MaxDelay
	}
	if c.ExponentialBase < 1 {
		c.ExponentialBase = d.ExponentialBase
	}
	return c
}

// BreakerOptions controls Executor.Call.
type BreakerOptions struct {
	// FailureThreshold is the failure count that opens the circuit.
	FailureThreshold int
	// ResetTimeout is how long an open circuit rejects calls before a half-open probe.
	ResetTimeout time.Duration
	// Retry overrides the executor's retry configuration for the wrapped call.
	Retry *RetryConfig
}

// DefaultBreakerOptions returns {failureThreshold=5, resetTimeout=60s}.
func DefaultBreakerOptions() BreakerOptions {
	return BreakerOptions{
		FailureThreshold: 5,
		ResetTimeout:     60 * time.Second,
	}
}

func (o BreakerOptions) withDefaults() BreakerOptions {
	d := DefaultBreakerOptions()
	if o.FailureThreshold <= 0 {
		o.FailureThreshold = d.FailureThreshold
	}
	if o.ResetTimeout <= 0 {
		o.ResetTimeout = d.ResetTimeout
	}
	return o
}

// Config is the configuration-file form of the executor settings.
type Config struct {
	MaxRetries       int           `mapstructure:"max_retries" default:"3"`
	BaseDelay        time.Duration `mapstructure:"base_delay" default:"1s"`
	MaxDelay         time.Duration `mapstructure:"max_delay" default:"10s"`
	ExponentialBase  float64       `mapstructure:"exponential_base" default:"2"`
	Jitter           bool          `mapstructure:"jitter" default:"true"`
	AttemptTimeout   time.Duration `mapstructure:"attempt_timeout" default:"15s"`
	FailureThreshold int           `mapstructure:"failure_threshold" default:"5"`
	ResetTimeout     time.Duration `mapstructure:"reset_timeout" default:"60s"`
}

// Retry converts the file settings into a RetryConfig.
func (c Config) Retry() RetryConfig {
	return RetryConfig{
		MaxRetries:      c.MaxRetries,
		BaseDelay:       c.BaseDelay,
		MaxDelay:        c.MaxDelay,
		ExponentialBase: c.ExponentialBase,
		Jitter:          c.Jitter,
		AttemptTimeout:  c.AttemptTimeout,
	}
}

// Breaker converts the file settings into BreakerOptions.
func (c Config) Breaker() BreakerOptions {
	return BreakerOptions{
		FailureThreshold: c.FailureThreshold,
		ResetTimeout:     c.ResetTimeout,
	}
}
