package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ContractsConfig struct {
	WarningWindowDays int
}

type NotifyConfig struct {
	WindowDays int
	CronSpec   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Backend     BackendConfig
	Contracts   ContractsConfig
	Notify      NotifyConfig
	CORS        CORSConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Backend: BackendConfig{
			BaseURL: v.GetString("BACKEND_BASE_URL"),
			Timeout: v.GetDuration("BACKEND_TIMEOUT"),
		},
		Contracts: ContractsConfig{
			WarningWindowDays: v.GetInt("WARNING_WINDOW_DAYS"),
		},
		Notify: NotifyConfig{
			WindowDays: v.GetInt("NOTIFY_WINDOW_DAYS"),
			CronSpec:   v.GetString("NOTIFY_CRON"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseList(v.GetString("CORS_ORIGINS")),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = 30 * time.Second
	}
	if cfg.Contracts.WarningWindowDays == 0 {
		cfg.Contracts.WarningWindowDays = 30
	}
	if cfg.Notify.WindowDays == 0 {
		cfg.Notify.WindowDays = 7
	}
	if cfg.Notify.CronSpec == "" {
		cfg.Notify.CronSpec = "0 8 * * *"
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if !strings.HasPrefix(cfg.Backend.BaseURL, "http://") && !strings.HasPrefix(cfg.Backend.BaseURL, "https://") {
		return fmt.Errorf("BACKEND_BASE_URL must be an http(s) URL")
	}
	if cfg.Contracts.WarningWindowDays < 0 {
		return fmt.Errorf("WARNING_WINDOW_DAYS must not be negative")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
