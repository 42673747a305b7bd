package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fastagent-dev/fastagent/internal/domain"
	"github.com/fastagent-dev/fastagent/internal/principal"
	"github.com/fastagent-dev/fastagent/internal/transport/http/handler"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeTokenIssuer struct {
	issue  func(ctx context.Context, email, password string) (*domain.Token, error)
	revoke func(ctx context.Context, userID int64) error
}

func (f *fakeTokenIssuer) IssueAuthenticationToken(ctx context.Context, email, password string) (*domain.Token, error) {
	return f.issue(ctx, email, password)
}

func (f *fakeTokenIssuer) RevokeAuthenticationTokens(ctx context.Context, userID int64) error {
	return f.revoke(ctx, userID)
}

func newTokenEngine(issuer *fakeTokenIssuer, user *domain.User) *gin.Engine {
	h := handler.NewTokenHandler(issuer, slog.Default())
	r := gin.New()
	if user != nil {
		r.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(principal.WithUser(c.Request.Context(), user))
			c.Next()
		})
	}
	r.POST("/v1/tokens/authentication", h.Create)
	r.DELETE("/v1/tokens", h.Revoke)
	return r
}

func TestCreateToken_ValidCredentials_Returns201WithPlaintext(t *testing.T) {
	tok, err := domain.NewToken(5, 24*time.Hour, domain.ScopeAuthentication)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	issuer := &fakeTokenIssuer{
		issue: func(_ context.Context, email, password string) (*domain.Token, error) {
			if email != "u@example.com" || password != "password123" {
				t.Errorf("usecase got (%q, %q)", email, password)
			}
			return tok, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/tokens/authentication",
		strings.NewReader(`{"email":"u@example.com","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	newTokenEngine(issuer, nil).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body = %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Expiry time.Time `json:"expiry"`
		Token  string    `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != tok.PlainText {
		t.Errorf("token = %q, want plaintext %q", resp.Token, tok.PlainText)
	}
	if !resp.Expiry.Equal(tok.Expiry) {
		t.Errorf("expiry = %v, want %v", resp.Expiry, tok.Expiry)
	}
}

func TestCreateToken_InvalidCredentials_Returns401(t *testing.T) {
	issuer := &fakeTokenIssuer{
		issue: func(context.Context, string, string) (*domain.Token, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/tokens/authentication",
		strings.NewReader(`{"email":"u@example.com","password":"wrongpassword"}`))
	req.Header.Set("Content-Type", "application/json")
	newTokenEngine(issuer, nil).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestCreateToken_ShortPassword_Returns400(t *testing.T) {
	issuer := &fakeTokenIssuer{
		issue: func(context.Context, string, string) (*domain.Token, error) {
			t.Fatal("usecase must not run for invalid input")
			return nil, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/tokens/authentication",
		strings.NewReader(`{"email":"u@example.com","password":"short"}`))
	req.Header.Set("Content-Type", "application/json")
	newTokenEngine(issuer, nil).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateToken_StorageFailure_Returns500(t *testing.T) {
	issuer := &fakeTokenIssuer{
		issue: func(context.Context, string, string) (*domain.Token, error) {
			return nil, errors.New("pool exhausted")
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/tokens/authentication",
		strings.NewReader(`{"email":"u@example.com","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	newTokenEngine(issuer, nil).ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestRevokeTokens_DeletesForCurrentPrincipal(t *testing.T) {
	var revokedID int64
	issuer := &fakeTokenIssuer{
		revoke: func(_ context.Context, userID int64) error {
			revokedID = userID
			return nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/tokens", nil)
	newTokenEngine(issuer, &domain.User{ID: 31}).ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if revokedID != 31 {
		t.Errorf("revoked user = %d, want 31", revokedID)
	}
}

func TestRevokeTokens_NoPrincipal_Returns401(t *testing.T) {
	issuer := &fakeTokenIssuer{
		revoke: func(context.Context, int64) error {
			t.Fatal("revoke must not run without a principal")
			return nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/tokens", nil)
	newTokenEngine(issuer, nil).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
