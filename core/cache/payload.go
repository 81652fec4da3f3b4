package cache

import "time"

// Payload is the unit stored under one cache key.
// It is never mutated in place; every refresh overwrites the whole object.
type Payload[T any] struct {
	// Data keeps provider response order.
	Data []T `json:"data"`
	// Timestamp is when the payload was stored.
	Timestamp time.Time `json:"timestamp"`
	// Source names the provider or path that produced the data.
	Source string `json:"source"`
	// TTL is the freshness window; expired payloads are ignored on read, not deleted.
	TTL time.Duration `json:"ttl"`
}

// FreshAt reports whether now - Timestamp < TTL.
func (p *Payload[T]) FreshAt(now time.Time) bool {
	return now.Sub(p.Timestamp) < p.TTL
}

// Age is the time elapsed since the payload was stored.
func (p *Payload[T]) Age(now time.Time) time.Duration {
	return now.Sub(p.Timestamp)
}
