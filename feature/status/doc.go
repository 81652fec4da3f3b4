// Package status exposes the operational state of the card service.
//
// # HTTP Endpoints
//
//   - GET /status : cache bucket, circuit breakers and search index health.
//   - GET /status/bucket : bucket check (supports ?fix=true to create it).
//   - GET /status/breakers : breaker snapshots.
//   - POST /status/breakers/reset?service=&operation= : force a breaker closed.
package status
