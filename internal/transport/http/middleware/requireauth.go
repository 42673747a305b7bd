package middleware

import (
	"net/http"

	"github.com/fastagent-dev/fastagent/internal/principal"
	"github.com/gin-gonic/gin"
)

// RequireAuthenticated guards protected routes. It rejects requests whose
// principal is absent or anonymous with a bare 401: whether a credential
// was missing or bad was already settled (or deliberately left ambiguous)
// by Authenticate, so no extra detail is leaked here.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := principal.FromContext(c.Request.Context())
		if !ok || user.IsAnonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Unauthorized"})
			return
		}
		c.Next()
	}
}
