package httptransport

import (
	"log/slog"

	"github.com/fastagent-dev/fastagent/internal/transport/http/handler"
	"github.com/fastagent-dev/fastagent/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

// Options carries the request-pipeline settings the router needs from config.
type Options struct {
	MaxBodyBytes int64
	AuthEnabled  bool
}

func NewRouter(
	logger *slog.Logger,
	users middleware.TokenUserGetter,
	userHandler *handler.UserHandler,
	tokenHandler *handler.TokenHandler,
	agentHandler *handler.AgentHandler,
	healthHandler *handler.HealthcheckHandler,
	opts Options,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	// The size guard wraps the raw byte stream before anything downstream
	// can read it; the authenticator then resolves the principal for the
	// rest of the chain.
	r.Use(middleware.MaxBodySize(opts.MaxBodyBytes))
	if opts.AuthEnabled {
		r.Use(middleware.Authenticate(users, logger))
	}

	v1 := r.Group("/v1")
	v1.GET("/healthcheck", healthHandler.Status)

	agents := v1.Group("/agents")
	if opts.AuthEnabled {
		agents.Use(middleware.RequireAuthenticated())
	}
	agents.POST("/invoke", agentHandler.Invoke)
	agents.POST("/batch", agentHandler.Batch)
	agents.POST("/stream", agentHandler.Stream)

	if opts.AuthEnabled {
		v1.POST("/users", userHandler.Create)
		v1.POST("/tokens/authentication", tokenHandler.Create)

		protected := v1.Group("", middleware.RequireAuthenticated())
		protected.GET("/users/me", userHandler.Me)
		protected.DELETE("/tokens", tokenHandler.Revoke)
	}

	return r
}
