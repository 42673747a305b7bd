package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fastagent-dev/fastagent/internal/domain"
	"github.com/fastagent-dev/fastagent/internal/metrics"
	"github.com/fastagent-dev/fastagent/internal/principal"
	"github.com/gin-gonic/gin"
)

// TokenUserGetter is the slice of the credential store the authenticator
// needs. Defined here (point of use) so tests can inject a fake.
type TokenUserGetter interface {
	GetForToken(ctx context.Context, scope domain.Scope, plaintext string) (*domain.User, error)
}

// lookupTimeout bounds the store round trip so a wedged backend cannot
// stall the authenticator.
const lookupTimeout = 3 * time.Second

const (
	detailInvalidScheme = "invalid authorization header, expected 'Bearer <token>'"
	detailInvalidFormat = "invalid token format"
	detailInvalidToken  = "invalid token"
)

// Authenticate resolves the Authorization header into a request principal.
//
// No header means anonymous access, which is a valid terminal state: the
// anonymous sentinel is attached and the request proceeds. A header that
// is present but malformed, of the wrong length, or unresolvable against
// the store is rejected with 401. Whether the token never existed, has
// the wrong scope or has expired is deliberately not distinguished.
func Authenticate(users TokenUserGetter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Responses differ by credential; shared caches must not serve an
		// authenticated response to an anonymous client or vice versa.
		c.Header("Vary", "Authorization")

		header := c.GetHeader("Authorization")
		if header == "" {
			attach(c, domain.AnonymousUser)
			metrics.AuthDecisionsTotal.WithLabelValues("anonymous").Inc()
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			reject(c, detailInvalidScheme)
			return
		}

		// Plaintext length is a public constant: obviously malformed
		// tokens are turned away before any storage round trip.
		if len(token) != domain.TokenLength {
			reject(c, detailInvalidFormat)
			return
		}

		lookupCtx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
		user, err := users.GetForToken(lookupCtx, domain.ScopeAuthentication, token)
		cancel()
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidToken) {
				logger.ErrorContext(c.Request.Context(), "token lookup", "error", err)
			}
			reject(c, detailInvalidToken)
			return
		}

		attach(c, user)
		metrics.AuthDecisionsTotal.WithLabelValues("authenticated").Inc()
		c.Next()
	}
}

// attach scopes the principal to this request's context. The context dies
// with the request, so the association can never leak into another
// request on a reused connection.
func attach(c *gin.Context, user *domain.User) {
	c.Request = c.Request.WithContext(principal.WithUser(c.Request.Context(), user))
}

func reject(c *gin.Context, detail string) {
	metrics.AuthDecisionsTotal.WithLabelValues("rejected").Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
}
