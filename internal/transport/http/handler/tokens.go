package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fastagent-dev/fastagent/internal/domain"
	"github.com/fastagent-dev/fastagent/internal/principal"
	"github.com/gin-gonic/gin"
)

// tokenIssuer is the subset of TokenUsecase the handler needs.
type tokenIssuer interface {
	IssueAuthenticationToken(ctx context.Context, email, password string) (*domain.Token, error)
	RevokeAuthenticationTokens(ctx context.Context, userID int64) error
}

type TokenHandler struct {
	tokens tokenIssuer
	logger *slog.Logger
}

func NewTokenHandler(tokens tokenIssuer, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{tokens: tokens, logger: logger.With("component", "token_handler")}
}

type createTokenRequest struct {
	Email    string `json:"email"    binding:"required,email,max=256"`
	Password string `json:"password" binding:"required,min=8,max=256"`
}

type createTokenResponse struct {
	Expiry time.Time `json:"expiry"`
	Token  string    `json:"token"`
}

// POST /v1/tokens/authentication
//
// The plaintext token in the response is the only time it ever leaves the
// process; from here on only its hash exists server side.
func (h *TokenHandler) Create(c *gin.Context) {
	var req createTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.tokens.IssueAuthenticationToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": errInvalidCredentials})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "issue token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, createTokenResponse{
		Expiry: token.Expiry,
		Token:  token.PlainText,
	})
}

// DELETE /v1/tokens, behind RequireAuthenticated; logout everywhere.
func (h *TokenHandler) Revoke(c *gin.Context) {
	user, ok := principal.FromContext(c.Request.Context())
	if !ok || user.IsAnonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Unauthorized"})
		return
	}

	if err := h.tokens.RevokeAuthenticationTokens(c.Request.Context(), user.ID); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "revoke tokens", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": errInternalServer})
		return
	}

	c.Status(http.StatusNoContent)
}
