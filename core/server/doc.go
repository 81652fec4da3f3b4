// Package server holds the HTTP server configuration and constants.
//
// The start command owns the Fiber application; this package only defines the
// settings it needs: listen port, optional API key and request timeouts.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key protecting every route
// and the deployment environment (development, staging, production).
package server
