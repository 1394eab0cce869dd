package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   BackendConfig   `yaml:"backend"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port               int      `yaml:"port"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type BackendConfig struct {
	BaseURL       string        `yaml:"base_url"`
	ClientTimeout time.Duration `yaml:"client_timeout"`
}

type DashboardConfig struct {
	RefreshInterval  time.Duration `yaml:"refresh_interval"`
	ItemsShown       int           `yaml:"items_shown"`
	ShowStaleOnError bool          `yaml:"show_stale_on_error"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File is where the terminal board writes its logs.
	File string `yaml:"file"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("HTTP_CLIENT_TIMEOUT", "10s")
	v.SetDefault("REFRESH_INTERVAL", "5s")
	v.SetDefault("ITEMS_SHOWN", 2)
	v.SetDefault("SHOW_STALE_ON_ERROR", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "kitchen-tui.log")

	clientTimeout, err := time.ParseDuration(v.GetString("HTTP_CLIENT_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing HTTP_CLIENT_TIMEOUT: %w", err)
	}

	refreshInterval, err := time.ParseDuration(v.GetString("REFRESH_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("parsing REFRESH_INTERVAL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               v.GetInt("SERVER_PORT"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Backend: BackendConfig{
			BaseURL:       v.GetString("API_BASE_URL"),
			ClientTimeout: clientTimeout,
		},
		Dashboard: DashboardConfig{
			RefreshInterval:  refreshInterval,
			ItemsShown:       v.GetInt("ITEMS_SHOWN"),
			ShowStaleOnError: v.GetBool("SHOW_STALE_ON_ERROR"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
			File:  v.GetString("LOG_FILE"),
		},
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base url is required")
	}
	if c.Dashboard.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", c.Dashboard.RefreshInterval)
	}
	if c.Dashboard.ItemsShown < 0 {
		return fmt.Errorf("items shown must not be negative, got %d", c.Dashboard.ItemsShown)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
