// Package httpserver wraps http.Server with listen address validation,
// connection timeouts and graceful shutdown.
package httpserver
