package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	DBPath        string `envconfig:"REWARD_DB_PATH" default:"./data/reward.sqlite"`
	Port          int    `envconfig:"REWARD_PORT" default:"8080"`
	LogLevel      string `envconfig:"REWARD_LOG_LEVEL" default:"info"`
	LogDir        string `envconfig:"REWARD_LOG_DIR" default:"./logs"`
	Timezone      string `envconfig:"REWARD_TIMEZONE" default:"UTC"`
	Network       string `envconfig:"REWARD_NETWORK" default:"mainnet"`
	AuthSecret    string `envconfig:"REWARD_AUTH_SECRET" required:"true"`
	AdminUsername string `envconfig:"REWARD_ADMIN_USERNAME" required:"true"`
	AdminPassword string `envconfig:"REWARD_ADMIN_PASSWORD" required:"true"`

	SpinWinQuota   int `envconfig:"REWARD_SPIN_WIN_QUOTA" default:"6"`
	MaxSpinsPerDay int `envconfig:"REWARD_MAX_SPINS_PER_DAY" default:"10"`

	MinWithdrawPoints int64 `envconfig:"REWARD_MIN_WITHDRAW_POINTS" default:"5000"`
	PointsPerCent     int64 `envconfig:"REWARD_POINTS_PER_CENT" default:"10"`
	ReferralBonus     int64 `envconfig:"REWARD_REFERRAL_BONUS" default:"200"`

	AdNetworkURL       string `envconfig:"REWARD_ADNET_URL"`
	AdNetworkKey       string `envconfig:"REWARD_ADNET_API_KEY"`
	AdNetworkRPS       int    `envconfig:"REWARD_ADNET_RPS" default:"5"`
	AutoAdIntervalMin  int    `envconfig:"REWARD_AUTO_AD_INTERVAL_MIN" default:"10"`
	AutoAdFailureLimit int    `envconfig:"REWARD_AUTO_AD_FAILURE_LIMIT" default:"3"`

	RateLimitRPS   int `envconfig:"REWARD_RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int `envconfig:"REWARD_RATE_LIMIT_BURST" default:"20"`
}

// Load reads configuration from .env file (if present) then from environment variables.
func Load() (*Config, error) {
	envFiles := []string{".env"}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				slog.Warn("failed to load .env file", "file", f, "error", err)
			} else {
				slog.Info("loaded .env file", "file", f)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid config: port must be 1-65535, got %d", c.Port)
	}
	if c.Network != "mainnet" && c.Network != "testnet" {
		return fmt.Errorf("invalid config: network must be \"mainnet\" or \"testnet\", got %q", c.Network)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid config: unknown timezone %q: %w", c.Timezone, err)
	}
	if c.MaxSpinsPerDay < 1 {
		return fmt.Errorf("invalid config: REWARD_MAX_SPINS_PER_DAY must be >= 1, got %d", c.MaxSpinsPerDay)
	}
	if c.SpinWinQuota < 0 || c.SpinWinQuota > c.MaxSpinsPerDay {
		return fmt.Errorf("invalid config: REWARD_SPIN_WIN_QUOTA must be 0-%d, got %d", c.MaxSpinsPerDay, c.SpinWinQuota)
	}
	if c.PointsPerCent < 1 {
		return fmt.Errorf("invalid config: REWARD_POINTS_PER_CENT must be >= 1, got %d", c.PointsPerCent)
	}
	if c.MinWithdrawPoints < 1 {
		return fmt.Errorf("invalid config: REWARD_MIN_WITHDRAW_POINTS must be >= 1, got %d", c.MinWithdrawPoints)
	}
	if c.AutoAdIntervalMin < 1 {
		return fmt.Errorf("invalid config: REWARD_AUTO_AD_INTERVAL_MIN must be >= 1, got %d", c.AutoAdIntervalMin)
	}
	if c.AutoAdFailureLimit < 1 {
		return fmt.Errorf("invalid config: REWARD_AUTO_AD_FAILURE_LIMIT must be >= 1, got %d", c.AutoAdFailureLimit)
	}
	return nil
}

// Location returns the configured timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
