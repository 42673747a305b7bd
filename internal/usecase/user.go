package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fastagent-dev/fastagent/internal/domain"
	"github.com/fastagent-dev/fastagent/internal/email"
	"github.com/fastagent-dev/fastagent/internal/metrics"
	"github.com/fastagent-dev/fastagent/internal/repository"
	"github.com/fastagent-dev/fastagent/internal/security"
)

const defaultActivationTTL = 3 * 24 * time.Hour

type UserUsecase struct {
	users         repository.UserRepository
	tokens        repository.TokenRepository
	email         email.Sender
	logger        *slog.Logger
	activationTTL time.Duration
}

func NewUserUsecase(users repository.UserRepository, tokens repository.TokenRepository, emailSender email.Sender, logger *slog.Logger) *UserUsecase {
	return &UserUsecase{
		users:         users,
		tokens:        tokens,
		email:         emailSender,
		logger:        logger.With("component", "user_usecase"),
		activationTTL: defaultActivationTTL,
	}
}

// Register hashes the password, persists the user and emails an
// activation token. The activation email is best effort: a mail outage
// must not fail a sign-up that is already committed.
func (u *UserUsecase) Register(ctx context.Context, name, emailAddr, password string) (*domain.User, error) {
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        emailAddr,
		PasswordHash: hash,
	}
	if err := u.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	token, err := domain.NewToken(user.ID, u.activationTTL, domain.ScopeActivation)
	if err != nil {
		u.logger.ErrorContext(ctx, "generate activation token", "error", err)
		return user, nil
	}
	if err := u.tokens.Insert(ctx, token); err != nil {
		u.logger.ErrorContext(ctx, "store activation token", "error", err)
		return user, nil
	}
	metrics.TokensIssuedTotal.WithLabelValues(string(domain.ScopeActivation)).Inc()

	subject := "Activate your fastagent account"
	body := fmt.Sprintf(
		`<p>Welcome to fastagent! Your activation token (valid for 3 days):</p><p><code>%s</code></p>`,
		token.PlainText,
	)
	if err := u.email.Send(ctx, emailAddr, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "send activation email", "error", err)
	}

	return user, nil
}
