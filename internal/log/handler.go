package log

import (
	"context"
	"log/slog"

	"github.com/fastagent-dev/fastagent/internal/principal"
	"github.com/fastagent-dev/fastagent/internal/requestid"
)

// ContextHandler wraps an slog.Handler and enriches every record with
// per-request context values: the request ID and, when a non-anonymous
// principal has been resolved, its user ID. The password hash is never
// logged; only the numeric ID crosses into log output.
type ContextHandler struct {
	inner slog.Handler
}

func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := requestid.FromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if user, ok := principal.FromContext(ctx); ok && !user.IsAnonymous() {
		r.AddAttrs(slog.Int64("user_id", user.ID))
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name)}
}
