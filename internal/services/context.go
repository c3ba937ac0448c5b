package services

import "context"

type contextKey string

const (
	categoryKey   contextKey = "category"
	externalIDKey contextKey = "external_id"
	stageKey      contextKey = "stage"
	requestIDKey  contextKey = "request_id"
)

// WithCategory annotates context with the media category being imported.
func WithCategory(ctx context.Context, category string) context.Context {
	if category == "" {
		return ctx
	}
	return context.WithValue(ctx, categoryKey, category)
}

// CategoryFromContext returns the media category if present.
func CategoryFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(categoryKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithExternalID annotates context with the source site identifier.
func WithExternalID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, externalIDKey, id)
}

// ExternalIDFromContext returns the source site identifier if present.
func ExternalIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(externalIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
