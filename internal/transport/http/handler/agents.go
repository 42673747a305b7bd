package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fastagent-dev/fastagent/internal/metrics"
	"github.com/fastagent-dev/fastagent/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

// agentCaller is the slice of agent.Proxy the handler needs.
type agentCaller interface {
	Do(ctx context.Context, operation string, body io.Reader) (*http.Response, error)
}

type AgentHandler struct {
	proxy  agentCaller
	logger *slog.Logger
}

func NewAgentHandler(proxy agentCaller, logger *slog.Logger) *AgentHandler {
	return &AgentHandler{proxy: proxy, logger: logger.With("component", "agent_handler")}
}

// POST /v1/agents/invoke
func (h *AgentHandler) Invoke(c *gin.Context) {
	h.forward(c, "invoke")
}

// POST /v1/agents/batch
func (h *AgentHandler) Batch(c *gin.Context) {
	h.forward(c, "batch")
}

// forward streams the request body to the runtime and the runtime's
// response back, buffering neither.
func (h *AgentHandler) forward(c *gin.Context, operation string) {
	start := time.Now()

	resp, err := h.proxy.Do(c.Request.Context(), operation, c.Request.Body)
	if err != nil {
		h.proxyError(c, operation, err)
		return
	}
	defer resp.Body.Close()

	metrics.AgentProxyDuration.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).
		Observe(time.Since(start).Seconds())

	c.DataFromReader(resp.StatusCode, resp.ContentLength, resp.Header.Get("Content-Type"), resp.Body, nil)
}

// POST /v1/agents/stream
//
// Server-sent events passthrough: each chunk from the runtime is flushed
// to the client as it arrives.
func (h *AgentHandler) Stream(c *gin.Context) {
	start := time.Now()

	resp, err := h.proxy.Do(c.Request.Context(), "stream", c.Request.Body)
	if err != nil {
		h.proxyError(c, "stream", err)
		return
	}
	defer resp.Body.Close()

	metrics.AgentProxyDuration.WithLabelValues("stream", strconv.Itoa(resp.StatusCode)).
		Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		c.DataFromReader(resp.StatusCode, resp.ContentLength, resp.Header.Get("Content-Type"), resp.Body, nil)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)

	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := c.Writer.Write(buf[:n]); writeErr != nil {
				return
			}
			c.Writer.Flush()
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				h.logger.ErrorContext(c.Request.Context(), "agent stream interrupted", "error", readErr)
			}
			return
		}
	}
}

func (h *AgentHandler) proxyError(c *gin.Context, operation string, err error) {
	// The size guard's abort propagates through the outbound request as a
	// body read error; it is the client's fault, not the runtime's.
	if errors.Is(err, middleware.ErrPayloadTooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": errPayloadTooLarge})
		return
	}

	h.logger.ErrorContext(c.Request.Context(), "agent proxy", "operation", operation, "error", err)
	metrics.AgentProxyDuration.WithLabelValues(operation, "error").Observe(0)
	c.JSON(http.StatusBadGateway, gin.H{"detail": errAgentUnavailable})
}
