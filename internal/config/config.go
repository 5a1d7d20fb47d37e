package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Session   SessionConfig
	Log       LogConfig
	Finance   FinanceConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// SessionConfig controls session token signing and lifetime.
// An empty Key makes the server generate a throwaway key at start-up.
type SessionConfig struct {
	Key          string
	TTL          time.Duration
	SecureCookie bool
}

// LogConfig selects the log level and encoding (json or console).
type LogConfig struct {
	Level  string
	Format string
}

// FinanceConfig holds defaults applied to transactions and dashboards.
type FinanceConfig struct {
	DefaultCurrency     string
	StrictCategoryTypes bool
}

// SchedulerConfig toggles the background cron jobs.
type SchedulerConfig struct {
	Enabled bool
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	ttl, err := getEnvDuration("SESSION_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5000"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/ecotracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Session: SessionConfig{
			Key:          os.Getenv("SESSION_KEY"),
			TTL:          ttl,
			SecureCookie: getEnvBool("SESSION_SECURE_COOKIE", false),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
		Finance: FinanceConfig{
			DefaultCurrency:     strings.ToUpper(getEnv("DEFAULT_CURRENCY", "INR")),
			StrictCategoryTypes: getEnvBool("STRICT_CATEGORY_TYPES", false),
		},
		Scheduler: SchedulerConfig{
			Enabled: getEnvBool("SCHEDULER_ENABLED", true),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	return validation.Errors{
		"SERVER_PORT":      validation.Validate(c.Server.Port, validation.Required, is.Port),
		"DB_PATH":          validation.Validate(c.Database.Path, validation.Required),
		"SESSION_TTL":      validation.Validate(int64(c.Session.TTL), validation.Min(int64(time.Minute))),
		"LOG_LEVEL":        validation.Validate(c.Log.Level, validation.In("debug", "info", "warn", "error")),
		"LOG_FORMAT":       validation.Validate(c.Log.Format, validation.In("json", "console")),
		"DEFAULT_CURRENCY": validation.Validate(c.Finance.DefaultCurrency, validation.Required, validation.Length(3, 3), is.UpperCase),
	}.Filter()
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool parses a boolean variable, falling back on absent or malformed values.
func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// getEnvList splits a comma separated variable, trimming blanks.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
