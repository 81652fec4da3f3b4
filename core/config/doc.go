// Package config loads the card catalog configuration.
//
// Values come from environment variables, optionally seeded from a .env file. Every key
// has a default declared on its struct field:
//
//	TTL time.Duration `mapstructure:"ttl" default:"24h"`
//
// Environment variables map to nested keys by replacing dots with underscores, so
// CACHE_TTL sets cache.ttl and PROVIDERS_POKEMON_API_KEY sets providers.pokemon_api_key.
//
// # Sections
//
//   - Server: port, API key, environment, timeouts
//   - Storage: MinIO/S3 endpoint, credentials and cache bucket
//   - Log: level, format, service name
//   - Database: search index connection (sqlite or mysql)
//   - Cache: backend (minio, redis, memory), TTL and key prefix
//   - Resilience: retry and circuit breaker settings
//   - Providers: upstream catalog URLs, API keys and request timeout
//   - Search: whether the search index is enabled
package config
