package gateway

import "context"

type contextKey string

const requestIDKey contextKey = "requestID"

// WithRequestID attaches a request ID used to correlate dispatcher log records.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom returns the request ID stored in ctx, or "-" when none is set.
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		return id
	}
	return "-"
}
