package maintenance_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fastagent-dev/fastagent/internal/domain"
	"github.com/fastagent-dev/fastagent/internal/maintenance"
)

type fakeTokenRepo struct {
	deleteExpired func(ctx context.Context) (int64, error)
}

func (f *fakeTokenRepo) Insert(context.Context, *domain.Token) error { return nil }

func (f *fakeTokenRepo) DeleteAllForUser(context.Context, domain.Scope, int64) error { return nil }

func (f *fakeTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return f.deleteExpired(ctx)
}

func TestNewTokenReaper_RejectsBadSchedule(t *testing.T) {
	_, err := maintenance.NewTokenReaper(&fakeTokenRepo{}, slog.Default(), "not a cron expression")
	if err == nil {
		t.Fatal("expected error for an unparseable schedule")
	}
}

func TestNewTokenReaper_AcceptsStandardSchedules(t *testing.T) {
	for _, expr := range []string{"@hourly", "@every 30m", "0 * * * *"} {
		if _, err := maintenance.NewTokenReaper(&fakeTokenRepo{}, slog.Default(), expr); err != nil {
			t.Errorf("schedule %q rejected: %v", expr, err)
		}
	}
}

func TestReap_DeletesExpiredTokens(t *testing.T) {
	calls := 0
	repo := &fakeTokenRepo{
		deleteExpired: func(context.Context) (int64, error) {
			calls++
			return 3, nil
		},
	}

	reaper, err := maintenance.NewTokenReaper(repo, slog.Default(), "@hourly")
	if err != nil {
		t.Fatalf("new reaper: %v", err)
	}

	reaper.Reap(context.Background())
	if calls != 1 {
		t.Fatalf("DeleteExpired called %d times, want 1", calls)
	}
}

func TestReap_SurvivesStoreFailure(t *testing.T) {
	repo := &fakeTokenRepo{
		deleteExpired: func(context.Context) (int64, error) {
			return 0, errors.New("connection reset")
		},
	}

	reaper, err := maintenance.NewTokenReaper(repo, slog.Default(), "@hourly")
	if err != nil {
		t.Fatalf("new reaper: %v", err)
	}

	// Must log and return, not panic; the next tick retries.
	reaper.Reap(context.Background())
}
