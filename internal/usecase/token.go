package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fastagent-dev/fastagent/internal/domain"
	"github.com/fastagent-dev/fastagent/internal/metrics"
	"github.com/fastagent-dev/fastagent/internal/repository"
	"github.com/fastagent-dev/fastagent/internal/security"
)

type TokenUsecase struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	ttl    time.Duration
}

func NewTokenUsecase(users repository.UserRepository, tokens repository.TokenRepository, ttl time.Duration) *TokenUsecase {
	return &TokenUsecase{users: users, tokens: tokens, ttl: ttl}
}

// IssueAuthenticationToken exchanges email+password for a fresh bearer
// token. A missing account and a wrong password both return
// domain.ErrInvalidCredentials so callers cannot probe which emails exist.
func (u *TokenUsecase) IssueAuthenticationToken(ctx context.Context, emailAddr, password string) (*domain.Token, error) {
	user, err := u.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := domain.NewToken(user.ID, u.ttl, domain.ScopeAuthentication)
	if err != nil {
		return nil, err
	}
	if err := u.tokens.Insert(ctx, token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	metrics.TokensIssuedTotal.WithLabelValues(string(domain.ScopeAuthentication)).Inc()
	return token, nil
}

// RevokeAuthenticationTokens invalidates every authentication token the
// user holds (logout everywhere).
func (u *TokenUsecase) RevokeAuthenticationTokens(ctx context.Context, userID int64) error {
	if err := u.tokens.DeleteAllForUser(ctx, domain.ScopeAuthentication, userID); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return nil
}
