package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"card-catalog/core/storage"
)

// ErrNotFound may be returned by a Backend in place of (Object{}, false, nil).
var ErrNotFound = errors.New("cache object not found")

// Object is a stored blob plus the backend's own modification time.
type Object struct {
	Data         []byte
	LastModified time.Time
}

// BackendError is a backend fault on one key.
type BackendError struct {
	Op  string
	Key string
	Err error
}

func (e *BackendError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Retryable applies the object storage rule to the cause alone, so the key never
// reads as a status code.
func (e *BackendError) Retryable() bool {
	return storage.Classifier(e.Err)
}

// Backend is a byte store addressed by string keys.
// Get returns (obj, true, nil) on hit and (Object{}, false, nil) on miss; remote faults are errors.
type Backend interface {
	Get(ctx context.Context, key string) (Object, bool, error)
	Put(ctx context.Context, key string, data []byte) error
	// Clear removes every object owned by this backend and reports how many were removed.
	Clear(ctx context.Context) (int, error)
	// Name identifies the backend in logs.
	Name() string
}

// NewBackend builds the backend selected by cfg. The object storage client is only
// used by the minio backend.
func NewBackend(cfg Config, client storage.Client, bucket string) (Backend, error) {
	switch cfg.Backend {
	case BackendMinio, "":
		if client == nil {
			return nil, fmt.Errorf("minio cache backend requires a storage client")
		}
		return NewMinioBackend(client, bucket, cfg.Prefix), nil
	case BackendRedis:
		return NewRedisBackend(NewRedisClient(cfg), cfg.Prefix), nil
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
