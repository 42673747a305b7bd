package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fastagent-dev/fastagent/config"
	"github.com/fastagent-dev/fastagent/internal/agent"
	"github.com/fastagent-dev/fastagent/internal/email"
	"github.com/fastagent-dev/fastagent/internal/health"
	"github.com/fastagent-dev/fastagent/internal/infrastructure/postgres"
	ctxlog "github.com/fastagent-dev/fastagent/internal/log"
	"github.com/fastagent-dev/fastagent/internal/maintenance"
	"github.com/fastagent-dev/fastagent/internal/metrics"
	httptransport "github.com/fastagent-dev/fastagent/internal/transport/http"
	"github.com/fastagent-dev/fastagent/internal/transport/http/handler"
	"github.com/fastagent-dev/fastagent/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.Migrate(ctx, cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	userRepo := postgres.NewUserRepository(pool)
	tokenRepo := postgres.NewTokenRepository(pool)

	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	userUsecase := usecase.NewUserUsecase(userRepo, tokenRepo, emailSender, logger)
	tokenUsecase := usecase.NewTokenUsecase(userRepo, tokenRepo, cfg.TokenTTL())

	proxy, err := agent.NewProxy(cfg.AgentUpstreamURL, cfg.AgentTimeout())
	if err != nil {
		stop()
		log.Fatalf("agent proxy: %v", err)
	}

	userHandler := handler.NewUserHandler(userUsecase, logger)
	tokenHandler := handler.NewTokenHandler(tokenUsecase, logger)
	agentHandler := handler.NewAgentHandler(proxy, logger)
	healthHandler := handler.NewHealthcheckHandler(version, cfg.Env)

	router := httptransport.NewRouter(logger, userRepo, userHandler, tokenHandler, agentHandler, healthHandler, httptransport.Options{
		MaxBodyBytes: cfg.MaxBodyBytes,
		AuthEnabled:  cfg.AuthEnabled,
	})

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	reaper, err := maintenance.NewTokenReaper(tokenRepo, logger, cfg.TokenReapSchedule)
	if err != nil {
		stop()
		log.Fatalf("token reaper: %v", err)
	}
	go reaper.Start(ctx)

	go func() {
		logger.Info("server started", "port", cfg.Port, "auth_enabled", cfg.AuthEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
