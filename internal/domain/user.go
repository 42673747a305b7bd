package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidToken       = errors.New("token is invalid or expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

type User struct {
	ID           int64
	CreatedAt    time.Time
	Name         string
	Email        string
	PasswordHash []byte
	Version      int
}

// AnonymousUser is the principal attached to requests that carry no
// credential. It is never persisted; id 0 is reserved for it.
var AnonymousUser = &User{ID: 0, Email: "anonymous@example.com"}

// IsAnonymous reports whether u is the anonymous sentinel.
func (u *User) IsAnonymous() bool {
	return u == AnonymousUser || u.ID == 0
}
