package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionBackendFile   = "file"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

type Config struct {
	AppEnv string

	APIBaseURL string

	SessionBackend   string
	SessionDir       string
	SessionKeyPrefix string
	RedisURL         string
	RedisAddr        string
	RedisPassword    string

	LogLevel  string
	LogFormat string

	GatewayPort string
	JWTSecret   string
	JWTExpiry   time.Duration
	OriginURL   string
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() *Config {
	envErr := godotenv.Load()

	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "24h"))
	if err != nil || expiry <= 0 {
		expiry = 24 * time.Hour
	}

	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		APIBaseURL:       strings.TrimRight(getEnv("STOREFRONT_API_URL", "http://localhost:8080"), "/"),
		SessionBackend:   getEnv("SESSION_BACKEND", SessionBackendFile),
		SessionDir:       getEnv("SESSION_DIR", defaultSessionDir()),
		SessionKeyPrefix: getEnv("SESSION_KEY_PREFIX", "storefront:session"),
		RedisURL:         getEnv("REDIS_URL", ""),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		LogLevel:         getEnv("LOG_LEVEL", "warn"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		GatewayPort:      getEnv("APP_PORT", getEnv("PORT", "8080")),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiry:        expiry,
		OriginURL:        getEnv("ORIGIN_URL", ""),
	}

	if envErr != nil {
		slog.Debug(".env file not found, using system environment variables")
	}
	return cfg
}

func (c *Config) Validate() error {
	switch c.SessionBackend {
	case SessionBackendFile, SessionBackendRedis, SessionBackendMemory:
	default:
		return fmt.Errorf("unknown session backend %q (want file, redis or memory)", c.SessionBackend)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base url is empty")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) SessionFile() string {
	return filepath.Join(c.SessionDir, "session.json")
}

func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(home, ".storefront")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
