package config

import (
	"os"
	"strconv"
	"time"
)

// AppConfig holds all application configuration, loaded from the environment
type AppConfig struct {
	// ServerPort is the HTTP listen port
	ServerPort string

	// DatabaseURL is the full PostgreSQL DSN. When empty, the individual
	// DB_* variables (or their defaults) are used instead; when those are
	// also absent the app falls back to a local SQLite file.
	DatabaseURL string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// LocalDBPath is the SQLite file used when no PostgreSQL is configured
	LocalDBPath string

	// TokenTTL is how long a login session stays valid
	TokenTTL time.Duration

	Environment string
}

// Load reads configuration from environment variables with sane defaults
func Load() *AppConfig {
	ttlHours := getEnvInt("AUTH_TOKEN_TTL_HOURS", 24)

	return &AppConfig{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", ""),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "bakery"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		LocalDBPath: getEnv("LOCAL_DB_PATH", "./data/bakery.db"),
		TokenTTL:    time.Duration(ttlHours) * time.Hour,
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

// UsePostgres reports whether a PostgreSQL connection is configured
func (c *AppConfig) UsePostgres() bool {
	return c.DatabaseURL != "" || c.DBHost != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
