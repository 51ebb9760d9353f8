package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	Env         string
	LogLevel    string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	CORSOrigins []string

	RateLimitPerMinute int
	RateLimitBurst     int

	ReminderInterval  time.Duration
	ReminderWindow    time.Duration
	ReminderCronToken string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:              fallback(os.Getenv("PORT"), "8080"),
		Env:               fallback(os.Getenv("APP_ENV"), "development"),
		LogLevel:          fallback(os.Getenv("LOG_LEVEL"), "info"),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:         strings.TrimSpace(os.Getenv("JWT_ISSUER")),
		CORSOrigins:       parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		ReminderCronToken: strings.TrimSpace(os.Getenv("REMINDER_CRON_TOKEN")),
	}

	cfg.JWTTTL = time.Duration(positiveInt("JWT_TTL_MINUTES", 60)) * time.Minute
	cfg.RateLimitPerMinute = positiveInt("RATE_LIMIT_PER_MINUTE", 120)
	cfg.RateLimitBurst = positiveInt("RATE_LIMIT_BURST", 20)
	cfg.ReminderWindow = time.Duration(positiveInt("REMINDER_WINDOW_HOURS", 24)) * time.Hour

	// 0 turns the in-process reminder job off.
	interval := fallback(os.Getenv("REMINDER_SCAN_INTERVAL_MINUTES"), "60")
	if minutes, err := strconv.Atoi(interval); err == nil && minutes >= 0 {
		cfg.ReminderInterval = time.Duration(minutes) * time.Minute
	} else {
		cfg.ReminderInterval = 60 * time.Minute
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// IsProduction reports whether APP_ENV selects production behaviour.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func positiveInt(key string, def int) int {
	n, err := strconv.Atoi(fallback(os.Getenv(key), strconv.Itoa(def)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
