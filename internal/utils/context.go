// Package utils holds small helpers shared by the agent and the hub: context
// keys, body signatures, JSON responses, the resty client and identifiers.
package utils

import (
	"context"
)

// contextKey is a private type for context keys so they never collide with
// string keys of other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey carries the trace id of the request or sync cycle that
// produced a context. The hub adapter forwards it as X-Trace-ID so one
// cycle can be followed across both processes.
var TraceIDCtxKey = contextKey("traceID")

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDCtxKey, traceID)
}

// GetTraceIDFromContext returns the trace id stored by WithTraceID.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok && traceID != ""
}
