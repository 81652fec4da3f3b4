package cache

import "time"

const (
	BackendMinio  = "minio"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// DefaultTTL is the store-wide freshness window.
const DefaultTTL = 24 * time.Hour

// Config holds configuration for the card payload cache.
type Config struct {
	// Backend selects the blob store (minio, redis, memory).
	Backend string `mapstructure:"backend" default:"minio"`
	// TTL is the declared lifetime of every written payload.
	TTL time.Duration `mapstructure:"ttl" default:"24h"`
	// Prefix namespaces every cache key inside the bucket or keyspace.
	Prefix string `mapstructure:"prefix" default:"cards"`
	// RedisAddr is the host:port of the redis server when Backend is redis.
	RedisAddr string `mapstructure:"redis_addr" default:"localhost:6379"`
	// RedisPassword authenticates against redis.
	RedisPassword string `mapstructure:"redis_password" default:""`
	// RedisDB selects the redis logical database.
	RedisDB int `mapstructure:"redis_db" default:"0"`
}
