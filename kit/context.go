package kit

import "context"

type contextKey string

const transportKey contextKey = "kit_transport"

// WithTransport records which surface ("http", "mcp") a request came from.
func WithTransport(ctx context.Context, t string) context.Context {
	return context.WithValue(ctx, transportKey, t)
}

// GetTransport returns the recorded transport, "http" by default.
func GetTransport(ctx context.Context) string {
	if v, ok := ctx.Value(transportKey).(string); ok {
		return v
	}
	return "http"
}
