package repository

import (
	"context"

	"github.com/fastagent-dev/fastagent/internal/domain"
)

type UserRepository interface {
	// Insert persists a new user and fills in the generated ID, CreatedAt
	// and Version. Returns domain.ErrDuplicateEmail when the email is
	// already taken.
	Insert(ctx context.Context, user *domain.User) error

	// GetByEmail returns domain.ErrUserNotFound when no user has the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetForToken resolves a plaintext token to its user. The token hash,
	// scope and a future expiry are matched as a single predicate: a token
	// that never existed, carries the wrong scope or has expired all fail
	// identically with domain.ErrInvalidToken.
	GetForToken(ctx context.Context, scope domain.Scope, plaintext string) (*domain.User, error)
}
