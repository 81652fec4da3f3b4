package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldData     = "data"
	fieldModified = "modified"
	scanBatch     = 500
)

// NewRedisClient creates a client from the cache configuration.
func NewRedisClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// RedisBackend stores each payload as a hash with the encoded body and its write time.
type RedisBackend struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisBackend creates a backend namespacing keys under prefix.
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix, now: time.Now}
}

func (b *RedisBackend) Name() string { return BackendRedis }

func (b *RedisBackend) redisKey(key string) string {
	if b.prefix == "" {
		return key
	}
	return b.prefix + ":" + key
}

func (b *RedisBackend) Get(ctx context.Context, key string) (Object, bool, error) {
	vals, err := b.client.HGetAll(ctx, b.redisKey(key)).Result()
	if err != nil {
		return Object{}, false, &BackendError{Op: "hgetall", Key: key, Err: err}
	}
	data, ok := vals[fieldData]
	if !ok {
		return Object{}, false, nil
	}
	obj := Object{Data: []byte(data)}
	if ts, err := time.Parse(time.RFC3339Nano, vals[fieldModified]); err == nil {
		obj.LastModified = ts
	}
	return obj, true, nil
}

func (b *RedisBackend) Put(ctx context.Context, key string, data []byte) error {
	err := b.client.HSet(ctx, b.redisKey(key),
		fieldData, data,
		fieldModified, b.now().UTC().Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return &BackendError{Op: "hset", Key: key, Err: err}
	}
	return nil
}

func (b *RedisBackend) Clear(ctx context.Context) (int, error) {
	pattern := b.redisKey("*")
	var removed int
	var cursor uint64
	for {
		keys, next, err := b.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return removed, &BackendError{Op: "scan", Key: pattern, Err: err}
		}
		if len(keys) > 0 {
			n, err := b.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, &BackendError{Op: "del", Err: err}
			}
			removed += int(n)
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}
