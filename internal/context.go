package internal

import (
	"context"
	"time"
)

type ctxKey string

const contextAdminIDKey ctxKey = "adminID"

func AdminIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if id, ok := ctx.Value(contextAdminIDKey).(int64); ok {
		return id
	}
	return 0
}

func ContextWithAdminID(ctx context.Context, adminID int64) context.Context {
	return context.WithValue(ctx, contextAdminIDKey, adminID)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds when
// the duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
