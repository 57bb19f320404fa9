package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerPort       = "8080"
	defaultChannelID        = "LedgerApp"
	defaultChannelKey       = "LedgerKey001"
	defaultInterestSchedule = "0 0 1 * *"
	defaultCORSOrigins      = "http://*,https://*"
	defaultShutdownSeconds  = 10
)

type Config struct {
	ServerPort             string `mapstructure:"SERVER_PORT"`
	ChannelID              string `mapstructure:"CHANNEL_ID"`
	ChannelKey             string `mapstructure:"CHANNEL_KEY"`
	InterestJobSchedule    string `mapstructure:"INTEREST_JOB_SCHEDULE"`
	InterestJobEnabled     bool   `mapstructure:"INTEREST_JOB_ENABLED"`
	CORSAllowedOrigins     string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// Load reads an optional .env file from the working directory, then the
// process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("SERVER_PORT", defaultServerPort)
	v.SetDefault("CHANNEL_ID", defaultChannelID)
	v.SetDefault("CHANNEL_KEY", defaultChannelKey)
	v.SetDefault("INTEREST_JOB_SCHEDULE", defaultInterestSchedule)
	v.SetDefault("INTEREST_JOB_ENABLED", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", defaultCORSOrigins)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownSeconds)
	v.AutomaticEnv()

	for _, key := range []string{
		"SERVER_PORT",
		"CHANNEL_ID",
		"CHANNEL_KEY",
		"INTEREST_JOB_SCHEDULE",
		"INTEREST_JOB_ENABLED",
		"CORS_ALLOWED_ORIGINS",
		"SHUTDOWN_TIMEOUT_SECONDS",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.ServerPort = strings.TrimSpace(cfg.ServerPort)
	cfg.ChannelID = strings.TrimSpace(cfg.ChannelID)
	cfg.ChannelKey = strings.TrimSpace(cfg.ChannelKey)
	cfg.InterestJobSchedule = strings.TrimSpace(cfg.InterestJobSchedule)

	if cfg.ServerPort == "" {
		return Config{}, fmt.Errorf("SERVER_PORT must not be empty")
	}
	if cfg.InterestJobEnabled && cfg.InterestJobSchedule == "" {
		return Config{}, fmt.Errorf("INTEREST_JOB_SCHEDULE is required when INTEREST_JOB_ENABLED is true")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		cfg.ShutdownTimeoutSeconds = defaultShutdownSeconds
	}

	return cfg, nil
}

func (c Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
