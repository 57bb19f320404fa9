package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "")
	t.Setenv("INTEREST_JOB_SCHEDULE", "")
	t.Setenv("INTEREST_JOB_ENABLED", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.ServerPort)
	}
	if cfg.InterestJobSchedule != "0 0 1 * *" {
		t.Fatalf("expected monthly schedule, got %q", cfg.InterestJobSchedule)
	}
	if !cfg.InterestJobEnabled {
		t.Fatal("expected interest job to be enabled by default")
	}
	if cfg.ShutdownTimeoutSeconds != 10 {
		t.Fatalf("expected shutdown timeout 10, got %d", cfg.ShutdownTimeoutSeconds)
	}
	if got := cfg.AllowedOrigins(); len(got) != 2 || got[0] != "http://*" {
		t.Fatalf("unexpected allowed origins: %v", got)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", " 9090 ")
	t.Setenv("CHANNEL_ID", "Teller")
	t.Setenv("CHANNEL_KEY", "TellerKey")
	t.Setenv("INTEREST_JOB_SCHEDULE", "*/5 * * * *")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://bank.example, ,http://localhost:3000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerPort != "9090" {
		t.Fatalf("expected trimmed port 9090, got %q", cfg.ServerPort)
	}
	if cfg.ChannelID != "Teller" || cfg.ChannelKey != "TellerKey" {
		t.Fatalf("unexpected channel credentials: %q %q", cfg.ChannelID, cfg.ChannelKey)
	}
	if cfg.InterestJobSchedule != "*/5 * * * *" {
		t.Fatalf("unexpected schedule %q", cfg.InterestJobSchedule)
	}
	origins := cfg.AllowedOrigins()
	if len(origins) != 2 || origins[1] != "http://localhost:3000" {
		t.Fatalf("unexpected allowed origins: %v", origins)
	}
}

func TestLoad_FailsWhenEnabledJobHasNoSchedule(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INTEREST_JOB_ENABLED", "true")
	t.Setenv("INTEREST_JOB_SCHEDULE", " ")

	_, err := Load()
	if err == nil {
		t.Fatal("expected missing schedule error")
	}
	if !strings.Contains(err.Error(), "INTEREST_JOB_SCHEDULE") {
		t.Fatalf("expected error to mention INTEREST_JOB_SCHEDULE, got %v", err)
	}
}
