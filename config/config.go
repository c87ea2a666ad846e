package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"
	"github.com/google/uuid"
)

type Config struct {
	Turntable TurntableConfig
	Pushover  PushoverConfig
	Relay     RelayConfig
}

type TurntableConfig struct {
	DbPath                string `env:"DB_PATH"`
	JwtSecret             string `env:"JWT_SECRET"`
	OwnerID               string `env:"OWNER_ID"`
	ViewerID              string `env:"VIEWER_ID"`
	Port                  string `env:"PORT"`
	LogLevel              string `env:"LOG_LEVEL"`
	BackgroundJobsEnabled bool   `env:"BACKGROUND_JOBS_ENABLED"`
}

type PushoverConfig struct {
	Token     string `env:"PUSHOVER_TOKEN"`
	Recipient string `env:"PUSHOVER_RECIPIENT"`
}

// RelayConfig is only consumed by the relay binary but lives here so both
// processes share one .env file.
type RelayConfig struct {
	PlayerWsURL string `env:"PLAYER_WS_URL"`
	ApiURL      string `env:"API_URL"`
	Token       string `env:"RELAY_TOKEN"`
}

func Load() (Config, error) {
	var cfg Config
	c := config.New()
	if _, err := os.Stat(".env"); err == nil {
		c.AddFeeder(feeder.DotEnv{Path: ".env"})
	}
	c.AddFeeder(feeder.Env{})
	c.AddStruct(&cfg)
	if err := c.Feed(); err != nil {
		return cfg, err
	}
	if cfg.Turntable.Port == "" {
		cfg.Turntable.Port = "3013"
	}
	return cfg, nil
}

// OwnerUUID parses the configured owner identity. The service refuses to
// start with a malformed owner id rather than locking everyone out silently.
func (c *Config) OwnerUUID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Turntable.OwnerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid OWNER_ID: %w", err)
	}
	return id, nil
}

func (c *Config) ViewerUUID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Turntable.ViewerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid VIEWER_ID: %w", err)
	}
	return id, nil
}

func (c *Config) GetLogLevel() slog.Leveler {
	logLevel := strings.ToLower(c.Turntable.LogLevel)
	if logLevel == "error" {
		return slog.LevelError
	}
	if logLevel == "warning" {
		return slog.LevelWarn
	}
	if logLevel == "info" {
		return slog.LevelInfo
	}
	if logLevel == "debug" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
