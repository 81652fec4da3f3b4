// Package logger builds the zap logger shared by the server, the CLI and every feature.
//
// A "debug" level selects zap's development preset (ISO8601 timestamps, caller info);
// every other level uses the production preset. Entries always carry level, time and
// message keys, plus a "service" field when one is configured.
//
// # Request Correlation
//
// WithRayID copies the RayID set by the rayid middleware onto a child logger, so the
// cache, provider and breaker lines written while serving one request share an id.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json or console
//   - Service: value of the "service" field
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Service: "card-catalog"})
//	l := logger.WithRayID(log, c)
//	l.Warn("Serving stale card data", zap.Duration("age", age))
package logger
