package slogx

import (
	"context"
	"log/slog"
	"sync"
)

type ctxKey struct{}

type requestKey struct{}

// requestAttrs collects attributes added downstream so the access log line
// written by HTTPMiddleware can include them.
type requestAttrs struct {
	mu   sync.Mutex
	args []any
}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// With returns ctx carrying the request logger extended with args, e.g. the
// authenticated user_id once it is known. Inside HTTPMiddleware the args are
// also attached to the access log line.
func With(ctx context.Context, args ...any) context.Context {
	if ra, ok := ctx.Value(requestKey{}).(*requestAttrs); ok {
		ra.mu.Lock()
		ra.args = append(ra.args, args...)
		ra.mu.Unlock()
	}
	return WithContext(ctx, FromContext(ctx).With(args...))
}
