package domain

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"golang.org/x/crypto/sha3"
)

// TokenLength is the length of every plaintext token: 16 random bytes
// encoded as base32 without padding. Requests carrying a token of any
// other length are rejected before a database round trip.
const TokenLength = 26

// Scope restricts which operation may redeem a token. Lookups filter on
// scope, so a token valid for one purpose is invisible to every other.
type Scope string

const (
	ScopeActivation     Scope = "activation"
	ScopeAuthentication Scope = "authentication"
)

// Token is an opaque bearer credential. PlainText is returned to the
// client exactly once at creation; only Hash is ever persisted.
type Token struct {
	PlainText string
	Hash      []byte
	UserID    int64
	Expiry    time.Time
	Scope     Scope
}

var base32NoPad = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewToken generates a token with 128 bits of entropy for the given user.
func NewToken(userID int64, ttl time.Duration, scope Scope) (*Token, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	plain := base32NoPad.EncodeToString(raw)

	return &Token{
		PlainText: plain,
		Hash:      HashToken(plain),
		UserID:    userID,
		Expiry:    time.Now().Add(ttl),
		Scope:     scope,
	}, nil
}

// HashToken returns the SHA3-256 digest of a plaintext token. The token's
// own randomness supplies the entropy, so a fast unsalted hash is correct
// here, unlike passwords.
func HashToken(plaintext string) []byte {
	hash := sha3.Sum256([]byte(plaintext))
	return hash[:]
}
