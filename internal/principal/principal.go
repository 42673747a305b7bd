// Package principal carries the resolved request identity through the
// context. One value per in-flight request; never process-wide state.
package principal

import (
	"context"

	"github.com/fastagent-dev/fastagent/internal/domain"
)

type ctxKey struct{}

// WithUser returns a copy of ctx carrying the resolved principal.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// FromContext extracts the principal. ok is false when the request never
// passed through the authenticator.
func FromContext(ctx context.Context) (user *domain.User, ok bool) {
	user, ok = ctx.Value(ctxKey{}).(*domain.User)
	return user, ok
}
