package app

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/parkmoor/clubhouse/internal/portal/service"
)

type Config struct {
	SessionSecret string        // Required: HMAC secret for session cookie tokens
	SessionTTL    time.Duration // Optional: session lifetime (default: 24h)
	SecureCookies bool          // Optional: issue __Host- cookies, requires TLS (default: false)

	DBDriver     string // Optional: credential store driver (sqlite, postgres) (default: sqlite)
	DatabaseFile string // Optional: path to SQLite database file (default: ./portal.db)
	DatabaseDSN  string // Required for postgres: connection string

	RedisAddr     string // Optional: redis address for the session store; empty keeps sessions in-process
	RedisPassword string // Optional
	RedisDB       int    // Optional

	S3Region   string // Optional: object storage region (default: us-east-1)
	S3Bucket   string // Required for uploads: object storage bucket
	S3Endpoint string // Optional: S3-compatible endpoint (MinIO et al)
	S3Access   string // Optional: static credentials; empty uses the SDK chain
	S3Secret   string // Optional

	AuditSink  string // Optional: where login events go (store, bucket) (default: store)
	PepperFile string // Optional: path to file containing pepper for password hashing (default: ./pepper)
	MaxUpload  int64  // Optional: upload size cap in bytes (default: 10 MiB)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		SessionSecret: os.Getenv("PORTAL_SESSION_SECRET"),
		SessionTTL:    getEnvDurationOrDefault("PORTAL_SESSION_TTL", 24*time.Hour),
		SecureCookies: getEnvBoolOrDefault("PORTAL_SECURE_COOKIES", false),

		DBDriver:     getEnvOrDefault("PORTAL_DB_DRIVER", "sqlite"),
		DatabaseFile: getEnvOrDefault("PORTAL_DATABASE_FILE", "portal.db"),
		DatabaseDSN:  os.Getenv("PORTAL_DATABASE_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),

		S3Region:   getEnvOrDefault("S3_REGION", "us-east-1"),
		S3Bucket:   os.Getenv("S3_BUCKET"),
		S3Endpoint: os.Getenv("S3_ENDPOINT"),
		S3Access:   os.Getenv("S3_ACCESS_KEY"),
		S3Secret:   os.Getenv("S3_SECRET_KEY"),

		AuditSink:  getEnvOrDefault("PORTAL_AUDIT_SINK", "store"),
		PepperFile: getEnvOrDefault("PORTAL_PEPPER_FILE", "pepper"),
		MaxUpload:  getEnvInt64OrDefault("PORTAL_MAX_UPLOAD_BYTES", service.DefaultMaxUploadBytes),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

// Validate rejects configurations the application cannot start with.
func (cfg Config) Validate() error {
	if cfg.SessionSecret == "" {
		return fmt.Errorf("PORTAL_SESSION_SECRET is required")
	}
	switch cfg.DBDriver {
	case "sqlite":
	case "postgres":
		if cfg.DatabaseDSN == "" {
			return fmt.Errorf("PORTAL_DATABASE_DSN is required with the postgres driver")
		}
	default:
		return fmt.Errorf("unknown PORTAL_DB_DRIVER %q", cfg.DBDriver)
	}
	switch cfg.AuditSink {
	case "store":
	case "bucket":
		if cfg.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required with the bucket audit sink")
		}
	default:
		return fmt.Errorf("unknown PORTAL_AUDIT_SINK %q", cfg.AuditSink)
	}
	return nil
}

// CookieSameSite returns the SameSite policy for session cookies.
func (cfg Config) CookieSameSite() http.SameSite {
	return http.SameSiteLaxMode
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

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
