// Package cache stores card payloads with a declared TTL.
//
// Expired payloads stay readable so callers can serve them when every upstream fails.
// Keys are derived deterministically from the request (see SearchKey and EntityKey);
// backends are interchangeable byte stores (MinIO, redis or process memory).
package cache
