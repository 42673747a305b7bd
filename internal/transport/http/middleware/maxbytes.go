package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/fastagent-dev/fastagent/internal/metrics"
	"github.com/gin-gonic/gin"
)

// ErrPayloadTooLarge is returned by the wrapped body reader the moment
// the running byte count crosses the configured ceiling. Handlers map it
// to a 413 via handler-level binding helpers.
var ErrPayloadTooLarge = errors.New("payload too large")

// MaxBodySize enforces a ceiling on the inbound request body.
//
// A declared Content-Length over the ceiling is rejected before the
// handler runs. Everything else is enforced incrementally: the body is
// wrapped in a counting reader, so a chunked or lying client is cut off
// as soon as the counter crosses the ceiling, and peak memory stays
// bounded regardless of what the client claims to send.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			metrics.RequestsTooLargeTotal.Inc()
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "Payload too large"})
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = &countingBody{body: c.Request.Body, remaining: limit}
		}
		c.Next()
	}
}

// countingBody decorates one request's byte stream. The counter lives in
// this per-request instance, never in shared state.
type countingBody struct {
	body      io.ReadCloser
	remaining int64
	exceeded  bool
}

func (b *countingBody) Read(p []byte) (int, error) {
	if b.exceeded {
		return 0, ErrPayloadTooLarge
	}

	n, err := b.body.Read(p)
	b.remaining -= int64(n)
	if b.remaining < 0 {
		b.exceeded = true
		metrics.RequestsTooLargeTotal.Inc()
		return n, ErrPayloadTooLarge
	}
	return n, err
}

func (b *countingBody) Close() error {
	return b.body.Close()
}
