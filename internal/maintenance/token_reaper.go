// Package maintenance runs periodic background upkeep alongside the server.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fastagent-dev/fastagent/internal/metrics"
	"github.com/fastagent-dev/fastagent/internal/repository"
	"github.com/robfig/cron/v3"
)

// TokenReaper deletes expired tokens on a cron schedule. Expired tokens
// are already invisible to lookups; reaping only keeps the table from
// growing without bound.
type TokenReaper struct {
	tokens   repository.TokenRepository
	logger   *slog.Logger
	schedule cron.Schedule
}

func NewTokenReaper(tokens repository.TokenRepository, logger *slog.Logger, cronExpr string) (*TokenReaper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse reap schedule %q: %w", cronExpr, err)
	}

	return &TokenReaper{
		tokens:   tokens,
		logger:   logger.With("component", "token_reaper"),
		schedule: schedule,
	}, nil
}

func (r *TokenReaper) Start(ctx context.Context) {
	r.logger.Info("token reaper started")

	for {
		timer := time.NewTimer(time.Until(r.schedule.Next(time.Now())))

		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("token reaper shut down")
			return
		case <-timer.C:
			r.Reap(ctx)
		}
	}
}

// Reap runs one deletion pass.
func (r *TokenReaper) Reap(ctx context.Context) {
	deleted, err := r.tokens.DeleteExpired(ctx)
	if err != nil {
		r.logger.Error("delete expired tokens", "error", err)
		return
	}
	if deleted > 0 {
		metrics.TokensReapedTotal.Add(float64(deleted))
		r.logger.Info("expired tokens deleted", "count", deleted)
	}
}
