package gallery

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/gallerykit/pkg/clientip"
)

// SecurityHeaders sets the response headers every gallery page carries.
// The CSP allows self-hosted media only.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data:; media-src 'self';")
		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs each request with the real client IP resolved by the
// clientip middleware, which must run earlier in the chain.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.InfoContext(r.Context(), "request",
				slog.String("ip", clientip.FromContext(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("user_agent", r.UserAgent()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
