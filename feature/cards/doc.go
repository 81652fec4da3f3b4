// Package cards is the single entry point for card data.
//
// A request is answered from the cache when a fresh payload exists. Otherwise the
// provider for the game is called and its result written back best-effort. When the
// provider fails, a stale payload for the same key is served instead; only a cold
// cache combined with a failing provider surfaces ErrNoDataAvailable.
//
// Concurrent misses for one key share a single upstream fetch.
package cards
