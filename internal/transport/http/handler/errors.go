package handler

import (
	"errors"
	"net/http"

	"github.com/fastagent-dev/fastagent/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer     = "Internal server error"
	errInvalidCredentials = "Invalid credentials"
	errDuplicateEmail     = "Email is already registered"
	errPayloadTooLarge    = "Payload too large"
	errAgentUnavailable   = "Agent runtime unavailable"
)

// bindJSON decodes the request body into dst and writes the client error
// itself on failure. A body cut off by the size guard is a 413, not a 400:
// the read error surfaces through the JSON decoder.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, middleware.ErrPayloadTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": errPayloadTooLarge})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return false
	}
	return true
}
