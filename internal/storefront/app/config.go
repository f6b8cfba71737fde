package app

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

// ErrMissingSecret is returned by Validate when SESSION_SECRET is unset.
// The service cannot sign or verify anything without it.
var ErrMissingSecret = errors.New("SESSION_SECRET is required")

// ErrSeedPasswordRequired is returned by Validate when ENV=prod would seed an
// admin with a generated password.
var ErrSeedPasswordRequired = errors.New("SEED_ADMIN_PASSWORD is required when ENV=prod")

type Config struct {
	SessionSecret       string        // Required: HS256 signing secret
	SessionTTL          time.Duration // Token lifetime (default: 1h)
	Issuer              string        // iss claim on issued tokens (default: storefront)
	CookieName          string        // Session cookie name (default: jwt)
	CookieSecure        bool          // Mark the session cookie Secure (default: false)
	LookupTimeout       time.Duration // Bound on the per-request user lookup (default: 5s)
	DatabaseFile        string        // Path to SQLite database file (default: ./storefront.db)
	SeedAdminEmail      string        // Optional: admin created when the user table is empty
	SeedAdminPassword   string        // Optional outside prod: generated and printed once if empty
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	StrictLimit  httpx.RateLimitConfig // login and sign-up
	LenientLimit httpx.RateLimitConfig // health probes

	// LogOutput overrides where logs go. Not read from the environment.
	LogOutput io.Writer

	// SecretOutput receives a generated admin password, never the logger.
	// Defaults to stderr.
	SecretOutput io.Writer
}

func LoadConfig() Config {
	return Config{
		SessionSecret:       os.Getenv("SESSION_SECRET"),
		SessionTTL:          getEnvDurationOrDefault("SESSION_TTL", jwtx.DefaultSessionTTL),
		Issuer:              getEnvOrDefault("SESSION_ISSUER", "storefront"),
		CookieName:          getEnvOrDefault("SESSION_COOKIE_NAME", "jwt"),
		CookieSecure:        getEnvBoolOrDefault("SESSION_COOKIE_SECURE", false),
		LookupTimeout:       getEnvDurationOrDefault("SESSION_LOOKUP_TIMEOUT", 5*time.Second),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "storefront.db"),
		SeedAdminEmail:      os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword:   os.Getenv("SEED_ADMIN_PASSWORD"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		StrictLimit:         httpx.ParseRateLimitFromEnv("STRICT", httpx.StrictLimit),
		LenientLimit:        httpx.ParseRateLimitFromEnv("LENIENT", httpx.LenientLimit),
	}
}

// Validate reports configuration the service cannot start with.
func (c Config) Validate() error {
	if c.SessionSecret == "" {
		return ErrMissingSecret
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.Env == "prod" && c.SeedAdminEmail != "" && c.SeedAdminPassword == "" {
		return ErrSeedPasswordRequired
	}
	return nil
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
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

	// Plain integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
