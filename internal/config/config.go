package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env             string        `env:"APP_ENV" envDefault:"development"`
	Port            string        `env:"PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// WheelConfig points at a YAML slot layout. Empty means the built-in
	// 16 violet / 16 black / 1 blue wheel.
	WheelConfig string `env:"WHEEL_CONFIG"`

	RedisURL  string `env:"REDIS_URL"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	RateLimitSpins int `env:"RATE_LIMIT_SPINS" envDefault:"30"`

	Ledger LedgerConfig `envPrefix:"LEDGER_"`
}

type LedgerConfig struct {
	StartingFTN  int64 `env:"STARTING_FTN" envDefault:"100"`
	StartingLBR  int64 `env:"STARTING_LBR" envDefault:"50"`
	MaxBet       int64 `env:"MAX_BET" envDefault:"0"`
	SeedDemoUser bool  `env:"SEED_DEMO_USER" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) RateLimitEnabled() bool {
	return c.RedisURL != "" && c.RateLimitSpins > 0
}

func (c *Config) validate() error {
	if c.Ledger.StartingFTN < 0 || c.Ledger.StartingLBR < 0 {
		return fmt.Errorf("starting balances must not be negative")
	}
	if c.Ledger.MaxBet < 0 {
		return fmt.Errorf("LEDGER_MAX_BET must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}

	return nil
}
