package httpserver

import "errors"

var (
	// ErrStart wraps listener and startup failures from Run.
	ErrStart = errors.New("http server start failed")
	// ErrShutdown wraps failures from graceful shutdown.
	ErrShutdown = errors.New("http server shutdown failed")
)
