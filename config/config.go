package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config is layered: code defaults, then an optional fastagent.toml
// project file, then environment variables (deployment overrides win).
type Config struct {
	Env         string `env:"ENV"          toml:"environment"  validate:"required,oneof=local staging production"`
	Port        string `env:"PORT"         toml:"port"         validate:"required"`
	MetricsPort string `env:"METRICS_PORT" toml:"metrics_port" validate:"required"`
	LogLevel    string `env:"LOG_LEVEL"    toml:"log_level"    validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL" toml:"database_url" validate:"required"`

	AuthEnabled   bool  `env:"AUTH_ENABLED"    toml:"authentication"`
	TokenTTLHours int   `env:"TOKEN_TTL_HOURS" toml:"token_ttl_hours" validate:"min=1,max=720"`
	MaxBodyBytes  int64 `env:"MAX_BODY_BYTES"  toml:"max_body_bytes"  validate:"min=1"`

	TokenReapSchedule string `env:"TOKEN_REAP_SCHEDULE" toml:"token_reap_schedule" validate:"required"`

	AgentUpstreamURL string `env:"AGENT_UPSTREAM_URL" toml:"agent_upstream_url" validate:"required,url"`
	AgentTimeoutSec  int    `env:"AGENT_TIMEOUT_SEC"  toml:"agent_timeout_sec"  validate:"min=1,max=600"`

	ResendAPIKey string `env:"RESEND_API_KEY" toml:"-" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    toml:"-" validate:"required_if=Env production,required_if=Env staging"`
}

// configFiles are probed in order; the first one found is used.
var configFiles = []string{"fastagent.toml", ".fastagent.toml"}

func defaults() *Config {
	return &Config{
		Env:               "local",
		Port:              "8000",
		MetricsPort:       "9090",
		LogLevel:          "info",
		AuthEnabled:       true,
		TokenTTLHours:     24,
		MaxBodyBytes:      1 << 20,
		TokenReapSchedule: "@hourly",
		AgentTimeoutSec:   60,
	}
}

func Load() (*Config, error) {
	cfg := defaults()

	for _, name := range configFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if _, err := toml.DecodeFile(name, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		break
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func (c *Config) AgentTimeout() time.Duration {
	return time.Duration(c.AgentTimeoutSec) * time.Second
}
