package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://backend:5210/api")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.HTTP.Port != 7090 {
		t.Errorf("HTTP.Port = %d, want 7090", cfg.HTTP.Port)
	}
	if cfg.Backend.Timeout != 30*time.Second {
		t.Errorf("Backend.Timeout = %v, want 30s", cfg.Backend.Timeout)
	}
	if cfg.Contracts.WarningWindowDays != 30 {
		t.Errorf("WarningWindowDays = %d, want 30", cfg.Contracts.WarningWindowDays)
	}
	if cfg.Notify.WindowDays != 7 {
		t.Errorf("Notify.WindowDays = %d, want 7", cfg.Notify.WindowDays)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://contracts.example.com/api")
	t.Setenv("BACKEND_TIMEOUT", "10s")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("WARNING_WINDOW_DAYS", "15")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://admin.local")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Backend.BaseURL != "https://contracts.example.com/api" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Backend.Timeout)
	}
	if cfg.HTTP.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.HTTP.Port)
	}
	if cfg.Contracts.WarningWindowDays != 15 {
		t.Errorf("WarningWindowDays = %d, want 15", cfg.Contracts.WarningWindowDays)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "http://admin.local" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when BACKEND_BASE_URL is missing")
	}
}

func TestLoadRejectsBadBaseURL(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "backend:5210")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-http base URL")
	}
}
