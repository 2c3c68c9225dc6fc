// Package httpserver wraps net/http with graceful shutdown on termination
// signals or context cancellation, configured through functional options.
package httpserver
