package usecase_test

import (
	"context"

	"github.com/fastagent-dev/fastagent/internal/domain"
)

type fakeUserRepo struct {
	insert      func(ctx context.Context, user *domain.User) error
	getByEmail  func(ctx context.Context, email string) (*domain.User, error)
	getForToken func(ctx context.Context, scope domain.Scope, plaintext string) (*domain.User, error)
}

func (f *fakeUserRepo) Insert(ctx context.Context, user *domain.User) error {
	return f.insert(ctx, user)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.getByEmail(ctx, email)
}

func (f *fakeUserRepo) GetForToken(ctx context.Context, scope domain.Scope, plaintext string) (*domain.User, error) {
	return f.getForToken(ctx, scope, plaintext)
}

type fakeTokenRepo struct {
	insert           func(ctx context.Context, token *domain.Token) error
	deleteAllForUser func(ctx context.Context, scope domain.Scope, userID int64) error
	deleteExpired    func(ctx context.Context) (int64, error)
}

func (f *fakeTokenRepo) Insert(ctx context.Context, token *domain.Token) error {
	return f.insert(ctx, token)
}

func (f *fakeTokenRepo) DeleteAllForUser(ctx context.Context, scope domain.Scope, userID int64) error {
	return f.deleteAllForUser(ctx, scope, userID)
}

func (f *fakeTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return f.deleteExpired(ctx)
}

type fakeEmailSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (f *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	return f.send(ctx, to, subject, body)
}
