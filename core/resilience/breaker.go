package resilience

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
)

// State is a circuit breaker state.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
)

type breakerKey struct {
	service   string
	operation string
}

type breakerState struct {
	state       State
	failures    int
	lastFailure time.Time
	probing     bool
}

// Snapshot is a point-in-time view of one breaker, safe to serialize.
type Snapshot struct {
	Service       string     `json:"service"`
	Operation     string     `json:"operation"`
	State         State      `json:"state"`
	Failures      int        `json:"failure_count"`
	LastFailureAt *time.Time `json:"last_failure_at,omitempty"`
}

// Call runs fn through Retry behind the (service, operation) breaker.
// opts nil uses the executor default.
func (e *Executor) Call(ctx context.Context, service, operation string, fn func(ctx context.Context) error, opts *BreakerOptions) error {
	bo := e.breaker
	if opts != nil {
		bo = opts.withDefaults()
	}
	key := breakerKey{service: service, operation: operation}

	if err := e.admit(key, bo); err != nil {
		return err
	}
	err := e.Retry(ctx, service, operation, fn, bo.Retry)
	e.record(ctx, key, bo, err)
	return err
}

// Guard is Call for operations producing a value.
func Guard[T any](ctx context.Context, e *Executor, service, operation string, fn func(ctx context.Context) (T, error), opts *BreakerOptions) (T, error) {
	var out T
	err := e.Call(ctx, service, operation, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	}, opts)
	return out, err
}

// admit decides whether a call may run, moving open to half-open once the reset timeout elapsed.
func (e *Executor) admit(key breakerKey, bo BreakerOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.stateLocked(key)
	switch st.state {
	case StateOpen:
		elapsed := e.now().Sub(st.lastFailure)
		if elapsed < bo.ResetTimeout {
			return &CircuitOpenError{Service: key.service, Operation: key.operation, RetryAfter: bo.ResetTimeout - elapsed}
		}
		st.state = StateHalfOpen
		st.probing = true
		e.logger.Info("Circuit breaker half-open",
			zap.String("service", key.service), zap.String("operation", key.operation))
	case StateHalfOpen:
		// Only one probe at a time.
		if st.probing {
			return &CircuitOpenError{Service: key.service, Operation: key.operation}
		}
		st.probing = true
	}
	return nil
}

func (e *Executor) record(ctx context.Context, key breakerKey, bo BreakerOptions, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.stateLocked(key)
	st.probing = false

	if err == nil {
		if st.state != StateClosed {
			e.logger.Info("Circuit breaker closed",
				zap.String("service", key.service), zap.String("operation", key.operation))
		}
		st.state = StateClosed
		st.failures = 0
		return
	}

	// Caller cancellation says nothing about the dependency.
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return
	}

	st.failures++
	st.lastFailure = e.now()
	if st.failures >= bo.FailureThreshold && st.state != StateOpen {
		st.state = StateOpen
		e.logger.Warn("Circuit breaker opened",
			zap.String("service", key.service),
			zap.String("operation", key.operation),
			zap.Int("failures", st.failures),
			zap.Duration("reset_timeout", bo.ResetTimeout),
			zap.Error(err))
	}
}

func (e *Executor) stateLocked(key breakerKey) *breakerState {
	st, ok := e.breakers[key]
	if !ok {
		st = &breakerState{state: StateClosed}
		e.breakers[key] = st
	}
	return st
}

// ResetCircuitBreaker forces a breaker back to closed with zeroed counters.
func (e *Executor) ResetCircuitBreaker(service, operation string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.breakers[breakerKey{service: service, operation: operation}] = &breakerState{state: StateClosed}
	e.logger.Info("Circuit breaker reset", zap.String("service", service), zap.String("operation", operation))
}

// Snapshot returns the current state of one breaker. Unknown breakers report closed.
func (e *Executor) Snapshot(service, operation string) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := breakerKey{service: service, operation: operation}
	st, ok := e.breakers[key]
	if !ok {
		return Snapshot{Service: service, Operation: operation, State: StateClosed}
	}
	return snapshotOf(key, st)
}

// Snapshots returns every known breaker ordered by service then operation.
func (e *Executor) Snapshots() []Snapshot {
	e.mu.Lock()
	out := make([]Snapshot, 0, len(e.breakers))
	for key, st := range e.breakers {
		out = append(out, snapshotOf(key, st))
	}
	e.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Service != out[j].Service {
			return out[i].Service < out[j].Service
		}
		return out[i].Operation < out[j].Operation
	})
	return out
}

func snapshotOf(key breakerKey, st *breakerState) Snapshot {
	s := Snapshot{
		Service:   key.service,
		Operation: key.operation,
		State:     st.state,
		Failures:  st.failures,
	}
	if !st.lastFailure.IsZero() {
		t := st.lastFailure
		s.LastFailureAt = &t
	}
	return s
}
