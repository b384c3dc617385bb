package app

import (
	"os"
	"strconv"
	"time"

	"github.com/lumonhq/persons/pkg/jwtx"
)

type Config struct {
	Issuer        string        // Issuer claim stamped into every token (default: persons-api)
	SigningSecret string        // HS256 signing secret; required in prod, generated in dev if unset
	AccessTTL     time.Duration // Access token lifetime (default: 1h)
	RefreshTTL    time.Duration // Refresh token lifetime (default: 72h)

	SeedUsername string // Account created on first start if the store is empty
	SeedPassword string

	DatabaseFile        string        // Path to SQLite database file (default: ./persons.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:        getEnvOrDefault("AUTH_ISSUER", "persons-api"),
		SigningSecret: os.Getenv("AUTH_SIGNING_SECRET"),
		AccessTTL:     getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:    getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),

		SeedUsername: getEnvOrDefault("SEED_USERNAME", "leandro"),
		SeedPassword: getEnvOrDefault("SEED_PASSWORD", "admin123"),

		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "persons.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
