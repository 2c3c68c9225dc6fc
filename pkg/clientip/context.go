package clientip

import "context"

type ctxKey struct{}

// NewContext returns a context carrying the resolved client IP.
func NewContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKey{}, ip)
}

// FromContext returns the client IP stored by Middleware. It reports
// Unknown when the middleware did not run, so log fields built from it
// are never empty.
func FromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(ctxKey{}).(string); ok && ip != "" {
		return ip
	}
	return Unknown
}
