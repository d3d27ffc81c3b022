package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordcards/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                  ":8080",
		DBPath:                "test.db",
		LogLevel:              "INFO",
		AuthURL:               "https://backend.example/auth",
		CategoriesURL:         "https://backend.example/categories",
		CardsURL:              "https://backend.example/cards",
		TranslateURL:          "https://backend.example/translate",
		AccountsURL:           "https://backend.example/accounts",
		RequestTimeout:        15 * time.Second,
		SessionSecret:         "0123456789abcdef",
		ClientCookieTTL:       time.Hour,
		ControllerIdleTimeout: time.Minute,
		SweepInterval:         time.Minute,
		ImportWorkerCount:     2,
		ImportQueueSize:       16,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EndpointURLs(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "missing auth url",
			mutate:        func(c *config.Config) { c.AuthURL = "" },
			expectedError: "AUTH_URL cannot be empty",
		},
		{
			name:          "wrong scheme",
			mutate:        func(c *config.Config) { c.CardsURL = "ftp://backend.example/cards" },
			expectedError: "CARDS_URL must use http or https",
		},
		{
			name:          "no host",
			mutate:        func(c *config.Config) { c.TranslateURL = "https:///translate" },
			expectedError: "TRANSLATE_URL must include a host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR", "debug"} {
		t.Run(level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = level
			assert.NoError(t, cfg.Validate())
		})
	}

	cfg := validConfig()
	cfg.LogLevel = "LOUD"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_ShortSecret(t *testing.T) {
	cfg := validConfig()
	cfg.SessionSecret = "short"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "ACCOUNTS_URL")
	assert.Contains(t, errStr, "REQUEST_TIMEOUT")
	assert.Contains(t, errStr, "SESSION_SECRET")
	assert.Contains(t, errStr, "IMPORT_WORKER_COUNT")
	assert.Contains(t, errStr, "IMPORT_QUEUE_SIZE")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("IMPORT_WORKER_COUNT", "not-a-number")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2, cfg.ImportWorkerCount)
	assert.True(t, cfg.CookieSecure)
}
