package middleware

import (
	"context"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyHTMX    ctxKey = "htmx"
	ctxKeySession ctxKey = "session"
)

// WithHTMX stores the htmx request headers.
func WithHTMX(ctx context.Context, info HTMXInfo) context.Context {
	return context.WithValue(ctx, ctxKeyHTMX, info)
}

// HTMXFromContext returns the htmx headers seen by the HTMX middleware.
func HTMXFromContext(ctx context.Context) HTMXInfo {
	v, _ := ctx.Value(ctxKeyHTMX).(HTMXInfo)
	return v
}

// IsHTMX returns whether this is an htmx request.
func IsHTMX(ctx context.Context) bool {
	return HTMXFromContext(ctx).Request
}
