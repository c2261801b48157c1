// Package ctxkeys holds the context keys shared by the API layer and the domain services.
// It is a leaf package so handlers, middleware and domain code can all import it.
package ctxkeys

import "context"

// Key is the named type for every context key in this module.
// A distinct type keeps them from colliding with string keys set elsewhere.
type Key string

const (
	// Subject is the authenticated caller, taken from the JWT "sub" claim
	// or set to "mcp-stdio" for the local stdio transport.
	Subject Key = "subject"

	// RequestID is the chi request id, copied here so domain logs can carry it.
	RequestID Key = "request_id"
)

// WithValue adds a ctxkeys.Key value to the context.
func WithValue(ctx context.Context, key Key, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

// String returns the string stored under key, or "" when absent.
func String(ctx context.Context, key Key) string {
	v, _ := ctx.Value(key).(string)
	return v
}
