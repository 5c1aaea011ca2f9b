package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Client   ClientConfig
	Geocode  GeocodeConfig
	LogLevel string
}

// ServerConfig holds reference backend configuration
type ServerConfig struct {
	Port           string
	Host           string
	UploadBasePath string // UPLOAD_BASE_PATH: directory complaint photos are written to
}

// AuthConfig holds token settings
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

// ClientConfig holds API client and CLI configuration
type ClientConfig struct {
	APIURL      string        // CIVICTRACK_API_URL: API origin, without /api
	SessionFile string        // CIVICTRACK_SESSION_FILE: where the CLI keeps its session
	HTTPTimeout time.Duration // HTTP_TIMEOUT_SECONDS
}

// GeocodeConfig holds geocoder configuration
type GeocodeConfig struct {
	URL      string        // GEOCODER_URL: Nominatim base URL
	Interval time.Duration // GEOCODE_INTERVAL_MS: spacing between requests, never below 1s
}

// Defaults
const (
	DefaultAPIURL          = "http://localhost:5000"
	DefaultGeocoderURL     = "https://nominatim.openstreetmap.org"
	DefaultGeocodeInterval = 1100 * time.Millisecond
	defaultJWTSecret       = "civictrack-dev-secret-change-me"
)

// LoadConfig loads configuration from environment variables.
// Call godotenv.Load first to pick up a .env file.
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("PORT", getEnv("SERVER_PORT", "5000")), // PORT for hosted platforms; SERVER_PORT for custom
			UploadBasePath: getEnv("UPLOAD_BASE_PATH", "uploads"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
			TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", 24*7),
		},
		Client: ClientConfig{
			APIURL:      getEnv("CIVICTRACK_API_URL", DefaultAPIURL),
			SessionFile: getEnv("CIVICTRACK_SESSION_FILE", defaultSessionFile()),
			HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Geocode: GeocodeConfig{
			URL:      getEnv("GEOCODER_URL", DefaultGeocoderURL),
			Interval: time.Duration(getEnvInt("GEOCODE_INTERVAL_MS", int(DefaultGeocodeInterval/time.Millisecond))) * time.Millisecond,
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// UsingDefaultSecret reports whether the JWT secret was left at its development default
func (c *Config) UsingDefaultSecret() bool {
	return c.Auth.JWTSecret == defaultJWTSecret
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".civictrack-session.yaml"
	}
	return filepath.Join(dir, "civictrack", "session.yaml")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// ParseLogLevel maps LOG_LEVEL values onto slog levels; unknown values mean info
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
