// Package providers adapts the upstream card catalogs to the canonical card record.
//
// Every adapter sends its requests through the resilience executor's circuit breaker keyed by
// provider and operation, so a failing catalog is short-circuited without affecting the others.
// Non-success responses surface as *ProviderError carrying the status code and retry intent.
package providers
