// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyResolutionID ctxKey = "resolution_id"

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID, resolutionID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if resolutionID != "" {
		ctx = context.WithValue(ctx, keyResolutionID, resolutionID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// ResolutionID returns the resolution id on the context if present
func ResolutionID(ctx context.Context) string {
	if v, ok := ctx.Value(keyResolutionID).(string); ok {
		return v
	}
	return ""
}
