package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"card-catalog/core/resilience"

	"go.uber.org/zap"
)

// Store persists Payloads of T in a Backend. Every backend call goes through the
// resilience executor as the object-storage service.
type Store[T any] struct {
	backend Backend
	exec    *resilience.Executor
	logger  *zap.Logger
	ttl     time.Duration
	now     func() time.Time
	retry   *resilience.RetryConfig
}

type storeSettings struct {
	now   func() time.Time
	retry *resilience.RetryConfig
}

// StoreOption configures a Store.
type StoreOption func(*storeSettings)

// WithClock replaces the wall clock used for timestamps and freshness.
func WithClock(now func() time.Time) StoreOption {
	return func(s *storeSettings) { s.now = now }
}

// WithRetry overrides the executor's retry configuration for cache calls.
func WithRetry(cfg resilience.RetryConfig) StoreOption {
	return func(s *storeSettings) { s.retry = &cfg }
}

// NewStore creates a store. A non-positive ttl falls back to DefaultTTL.
func NewStore[T any](backend Backend, exec *resilience.Executor, logger *zap.Logger, ttl time.Duration, opts ...StoreOption) *Store[T] {
	settings := storeSettings{now: time.Now}
	for _, opt := range opts {
		opt(&settings)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store[T]{
		backend: backend,
		exec:    exec,
		logger:  logger,
		ttl:     ttl,
		now:     settings.now,
		retry:   settings.retry,
	}
}

// TTL returns the store-wide payload lifetime.
func (s *Store[T]) TTL() time.Duration {
	return s.ttl
}

type lookup struct {
	obj   Object
	found bool
}

// Read returns the payload at key. Misses, terminal storage faults and undecodable
// objects all report absent; errors never reach the caller.
func (s *Store[T]) Read(ctx context.Context, key string) (*Payload[T], bool) {
	res, err := resilience.Do(ctx, s.exec, resilience.ServiceObjectStorage, "cache.read", func(ctx context.Context) (lookup, error) {
		obj, found, err := s.backend.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			return lookup{}, nil
		}
		return lookup{obj: obj, found: found}, err
	}, s.retry)
	if err != nil {
		s.logger.Warn("Cache read failed, treating as absent",
			zap.String("key", key), zap.String("backend", s.backend.Name()), zap.Error(err))
		return nil, false
	}
	if !res.found {
		return nil, false
	}

	var p Payload[T]
	if err := json.Unmarshal(res.obj.Data, &p); err != nil {
		s.logger.Warn("Cache object is not a valid payload, treating as absent",
			zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = res.obj.LastModified
	}
	if p.TTL <= 0 {
		p.TTL = s.ttl
	}
	return &p, true
}

// IsFresh reports whether now - payload.Timestamp < payload.TTL.
func (s *Store[T]) IsFresh(p *Payload[T]) bool {
	return p != nil && p.FreshAt(s.now())
}

// Age returns how long ago p was stored.
func (s *Store[T]) Age(p *Payload[T]) time.Duration {
	return p.Age(s.now())
}

// Write overwrites key with a new payload stamped now with the store TTL.
// Failures are logged and returned; callers serving a fresh fetch ignore them.
func (s *Store[T]) Write(ctx context.Context, key string, data []T, source string) error {
	if data == nil {
		data = []T{}
	}
	p := Payload[T]{
		Data:      data,
		Timestamp: s.now(),
		Source:    source,
		TTL:       s.ttl,
	}
	body, err := json.Marshal(p)
	if err != nil {
		s.logger.Warn("Cache payload encoding failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("encode payload: %w", err)
	}

	err = s.exec.Retry(ctx, resilience.ServiceObjectStorage, "cache.write", func(ctx context.Context) error {
		return s.backend.Put(ctx, key, body)
	}, s.retry)
	if err != nil {
		s.logger.Warn("Cache write failed",
			zap.String("key", key), zap.String("backend", s.backend.Name()), zap.Error(err))
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Clear removes every cached payload. It is an out-of-band administrative operation.
func (s *Store[T]) Clear(ctx context.Context) (int, error) {
	removed, err := resilience.Do(ctx, s.exec, resilience.ServiceObjectStorage, "cache.clear", s.backend.Clear, s.retry)
	if err != nil {
		return removed, fmt.Errorf("clear cache: %w", err)
	}
	s.logger.Info("Cache cleared", zap.String("backend", s.backend.Name()), zap.Int("removed", removed))
	return removed, nil
}
