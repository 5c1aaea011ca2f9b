package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SERVER_PORT", "JWT_SECRET", "GEOCODE_INTERVAL_MS", "CIVICTRACK_API_URL", "HTTP_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, DefaultAPIURL, cfg.Client.APIURL)
	assert.Equal(t, DefaultGeocodeInterval, cfg.Geocode.Interval)
	assert.Equal(t, 30*time.Second, cfg.Client.HTTPTimeout)
	assert.True(t, cfg.UsingDefaultSecret())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("GEOCODE_INTERVAL_MS", "2500")
	t.Setenv("TOKEN_TTL_HOURS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.False(t, cfg.UsingDefaultSecret())
	assert.Equal(t, 2500*time.Millisecond, cfg.Geocode.Interval)
	assert.Equal(t, 24*7, cfg.Auth.TokenTTLHours)
}

func TestPortTakesPrecedence(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("SERVER_PORT", "9090")

	assert.Equal(t, "7000", LoadConfig().Server.Port)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogLevel(tt.in), tt.in)
	}
}
