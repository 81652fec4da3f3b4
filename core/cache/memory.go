package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryBackend keeps objects in process memory. It suits local runs and tests.
type MemoryBackend struct {
	mu      sync.RWMutex
	objects map[string]Object
	now     func() time.Time
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{objects: make(map[string]Object), now: time.Now}
}

func (b *MemoryBackend) Name() string { return BackendMemory }

func (b *MemoryBackend) Get(ctx context.Context, key string) (Object, bool, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	obj, ok := b.objects[key]
	if !ok {
		return Object{}, false, nil
	}
	obj.Data = append([]byte(nil), obj.Data...)
	return obj, true, nil
}

func (b *MemoryBackend) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	b.objects[key] = Object{Data: append([]byte(nil), data...), LastModified: b.now()}
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Clear(ctx context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.objects)
	b.objects = make(map[string]Object)
	return n, nil
}

// Keys returns the stored keys with the given prefix.
func (b *MemoryBackend) Keys(prefix string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var keys []string
	for k := range b.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys
}
