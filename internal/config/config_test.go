package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Backend.ClientTimeout)
	assert.Equal(t, 5*time.Second, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, 2, cfg.Dashboard.ItemsShown)
	assert.False(t, cfg.Dashboard.ShowStaleOnError)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "kitchen-tui.log", cfg.Log.File)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("API_BASE_URL", "http://kitchen-api:8000")
	t.Setenv("REFRESH_INTERVAL", "2s")
	t.Setenv("SHOW_STALE_ON_ERROR", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://kitchen-api:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Dashboard.RefreshInterval)
	assert.True(t, cfg.Dashboard.ShowStaleOnError)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "often")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{name: "valid", mutate: func(*Config) {}, valid: true},
		{name: "missing base url", mutate: func(c *Config) { c.Backend.BaseURL = "" }},
		{name: "zero interval", mutate: func(c *Config) { c.Dashboard.RefreshInterval = 0 }},
		{name: "negative items", mutate: func(c *Config) { c.Dashboard.ItemsShown = -1 }},
		{name: "zero items", mutate: func(c *Config) { c.Dashboard.ItemsShown = 0 }, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Backend:   BackendConfig{BaseURL: "http://localhost:8000"},
				Dashboard: DashboardConfig{RefreshInterval: time.Second, ItemsShown: 2},
			}
			tt.mutate(cfg)
			if tt.valid {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}
