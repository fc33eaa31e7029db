package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SQLitePath  string

	// Session tokens
	TokenSecret string
	TokenTTL    time.Duration

	// Logging
	LogLevel     string
	LogToDB      bool
	LogRetention time.Duration

	// Error tracking
	SentryDSN string
	AppEnv    string

	// Server
	Port          string
	CORSOrigins   string
	RateLimit     int
	AuthRateLimit int
}

// Load reads configuration from the environment. A missing TOKEN_SECRET is
// fatal: tokens cannot be issued or verified without it.
func Load() (*Config, error) {
	cfg := &Config{
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "contacts_db"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		SQLitePath:  getEnv("SQLITE_PATH", "contacts.db"),

		TokenSecret: strings.TrimSpace(getEnv("TOKEN_SECRET", "")),
		TokenTTL:    parseDuration(getEnv("TOKEN_TTL", "90m"), 90*time.Minute),

		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogToDB:      parseBool(getEnv("LOG_TO_DB", "true")),
		LogRetention: parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", "development"),

		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		RateLimit:     parseInt(getEnv("RATE_LIMIT", "60"), 60),
		AuthRateLimit: parseInt(getEnv("AUTH_RATE_LIMIT", "10"), 10),
	}

	if cfg.TokenSecret == "" {
		return nil, errors.New("TOKEN_SECRET environment variable is required")
	}
	switch cfg.DBDriver {
	case "postgres":
		if cfg.DatabaseURL == "" && cfg.DBPassword == "" {
			return nil, errors.New("DATABASE_URL or DB_PASSWORD environment variable is required")
		}
	case "sqlite":
	default:
		return nil, errors.New("DB_DRIVER must be postgres or sqlite, got " + cfg.DBDriver)
	}

	return cfg, nil
}

// DSN returns the postgres connection string. DATABASE_URL wins over the
// individual DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
