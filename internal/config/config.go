package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	LogFormat          string
	CORSAllowedOrigins []string

	// Clinic schedule
	ClinicOpenHour      int
	ClinicCloseHour     int
	SlotIntervalMinutes int

	// Booking widget behavior
	WeekStartsOn  string // "sunday" or "monday"
	ClosedDayRule string // "holiday" (fixed Feb 18) or "weekends"
	AnchorPolicy  string // "first-available" or "today"

	// Selection sessions
	SessionTTL time.Duration

	// Design-version persistence
	VersionsStore string // "memory", "file", "redis" or "postgres"
	VersionsFile  string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS"),

		ClinicOpenHour:      getEnvAsInt("CLINIC_OPEN_HOUR", 9),
		ClinicCloseHour:     getEnvAsInt("CLINIC_CLOSE_HOUR", 17),
		SlotIntervalMinutes: getEnvAsInt("SLOT_INTERVAL_MINUTES", 30),

		WeekStartsOn:  strings.ToLower(getEnv("WEEK_STARTS_ON", "sunday")),
		ClosedDayRule: strings.ToLower(getEnv("CLOSED_DAY_RULE", "holiday")),
		AnchorPolicy:  strings.ToLower(getEnv("ANCHOR_POLICY", "first-available")),

		SessionTTL: getEnvAsDuration("SESSION_TTL", 30*time.Minute),

		VersionsStore: strings.ToLower(getEnv("VERSIONS_STORE", "file")),
		VersionsFile:  getEnv("VERSIONS_FILE", "public/design-versions.json"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
	}
}

// WeekStart maps the configured week-start name to a weekday.
// Unknown values fall back to Sunday, matching the booking view default.
func (c *Config) WeekStart() time.Weekday {
	if c.WeekStartsOn == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSlice splits a comma-separated environment variable, dropping empty entries.
func getEnvAsSlice(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
