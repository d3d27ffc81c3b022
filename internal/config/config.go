package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr      string
	DBPath    string
	LogLevel  string
	LogFormat string

	AuthURL       string
	CategoriesURL string
	CardsURL      string
	TranslateURL  string
	AccountsURL   string

	RequestTimeout        time.Duration
	SessionSecret         string
	CookieSecure          bool
	ClientCookieTTL       time.Duration
	ControllerIdleTimeout time.Duration
	SweepInterval         time.Duration
	SpeechCommand         string

	ImportWorkerCount int
	ImportQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "file:wordcards.db"),
		LogLevel:              strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		LogFormat:             strings.ToLower(envOr("LOG_FORMAT", "text")),
		AuthURL:               envOr("AUTH_URL", ""),
		CategoriesURL:         envOr("CATEGORIES_URL", ""),
		CardsURL:              envOr("CARDS_URL", ""),
		TranslateURL:          envOr("TRANSLATE_URL", ""),
		AccountsURL:           envOr("ACCOUNTS_URL", ""),
		RequestTimeout:        envDurationOr("REQUEST_TIMEOUT", 15*time.Second),
		SessionSecret:         envOr("SESSION_SECRET", ""),
		CookieSecure:          envBoolOr("COOKIE_SECURE", false),
		ClientCookieTTL:       envDurationOr("CLIENT_COOKIE_TTL", 30*24*time.Hour),
		ControllerIdleTimeout: envDurationOr("CONTROLLER_IDLE_TIMEOUT", 30*time.Minute),
		SweepInterval:         envDurationOr("SWEEP_INTERVAL", 5*time.Minute),
		SpeechCommand:         envOr("SPEECH_COMMAND", ""),
		ImportWorkerCount:     envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:       envIntOr("IMPORT_QUEUE_SIZE", 16),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}

	endpoints := []struct {
		key   string
		value string
	}{
		{"AUTH_URL", c.AuthURL},
		{"CATEGORIES_URL", c.CategoriesURL},
		{"CARDS_URL", c.CardsURL},
		{"TRANSLATE_URL", c.TranslateURL},
		{"ACCOUNTS_URL", c.AccountsURL},
	}
	for _, e := range endpoints {
		if err := validateURL(e.value); err != nil {
			errs = append(errs, fmt.Errorf("%s %w", e.key, err))
		}
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if len(c.SessionSecret) < 16 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 16 characters"))
	}
	if c.ClientCookieTTL <= 0 {
		errs = append(errs, errors.New("CLIENT_COOKIE_TTL must be positive"))
	}
	if c.ControllerIdleTimeout <= 0 {
		errs = append(errs, errors.New("CONTROLLER_IDLE_TIMEOUT must be positive"))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, errors.New("SWEEP_INTERVAL must be positive"))
	}
	if c.ImportWorkerCount < 1 {
		errs = append(errs, errors.New("IMPORT_WORKER_COUNT must be at least 1"))
	}
	if c.ImportQueueSize < 1 {
		errs = append(errs, errors.New("IMPORT_QUEUE_SIZE must be at least 1"))
	}

	return errors.Join(errs...)
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("is not a valid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid duration for %s=%q, using default %s", key, v, def)
	}
	return def
}
