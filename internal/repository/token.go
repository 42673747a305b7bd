package repository

import (
	"context"

	"github.com/fastagent-dev/fastagent/internal/domain"
)

type TokenRepository interface {
	Insert(ctx context.Context, token *domain.Token) error

	// DeleteAllForUser removes every token the user holds in the given
	// scope. Used for logout-all and after a password change.
	DeleteAllForUser(ctx context.Context, scope domain.Scope, userID int64) error

	// DeleteExpired removes tokens past their expiry and reports how many
	// were deleted. Expired tokens are already invisible to lookups; this
	// only bounds table growth.
	DeleteExpired(ctx context.Context) (int64, error)
}
