package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	currencyinput "github.com/goliatone/go-currency-input"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		files       []string
		wantError   bool
		checkConfig func(*testing.T, *Config)
	}{
		{
			name:  "defaults",
			files: []string{filepath.Join("testdata", "missing.env")},
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "development", cfg.Environment)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 256, cfg.Server.MaxKeystrokes)
				assert.Equal(t, "64K", cfg.Server.BodyLimit)
				assert.Equal(t, "en-US", cfg.Formatting.DefaultLocale)
				assert.Equal(t, -1, cfg.Formatting.DecimalDigits)
				assert.Equal(t, "currencyinput", cfg.Telemetry.ServiceName)
			},
		},
		{
			name: "environment variables",
			env: map[string]string{
				"ENVIRONMENT":             "production",
				"SERVER_PORT":             "9000",
				"SERVER_WRITE_TIMEOUT":    "3s",
				"SERVER_BODY_LIMIT":       "1M",
				"CURRENCY_LOCALE":         "en-GB",
				"CURRENCY_DECIMAL_DIGITS": "3",
				"OTEL_ENABLED":            "false",
			},
			files: []string{filepath.Join("testdata", "missing.env")},
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "production", cfg.Environment)
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, 3*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, "1M", cfg.Server.BodyLimit)
				assert.Equal(t, "en-GB", cfg.Formatting.Locale)
				assert.Equal(t, 3, cfg.Formatting.DecimalDigits)
				assert.False(t, cfg.Telemetry.Enabled)
			},
		},
		{
			name:  "env file",
			files: []string{filepath.Join("testdata", "test.env")},
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "fr-FR", cfg.Formatting.Locale)
				assert.True(t, cfg.Formatting.AllowNegative)
			},
		},
		{
			name:  "process environment wins over env file",
			env:   map[string]string{"SERVER_PORT": "7070"},
			files: []string{filepath.Join("testdata", "test.env")},
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
			},
		},
		{
			name:  "invalid numbers fall back to defaults",
			env:   map[string]string{"SERVER_PORT": "not-a-port", "CURRENCY_ALLOW_NEGATIVE": "maybe"},
			files: []string{filepath.Join("testdata", "missing.env")},
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.False(t, cfg.Formatting.AllowNegative)
			},
		},
		{
			name:      "port out of range",
			env:       map[string]string{"SERVER_PORT": "70000"},
			files:     []string{filepath.Join("testdata", "missing.env")},
			wantError: true,
		},
		{
			name:      "decimal digits out of range",
			env:       map[string]string{"CURRENCY_DECIMAL_DIGITS": "341"},
			files:     []string{filepath.Join("testdata", "missing.env")},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"SERVER_PORT", "CURRENCY_LOCALE", "CURRENCY_ALLOW_NEGATIVE"} {
				if _, ok := tt.env[key]; !ok {
					t.Setenv(key, "")
					require.NoError(t, os.Unsetenv(key))
				}
			}
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg, err := Load(tt.files...)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.checkConfig(t, cfg)
		})
	}
}

func TestServerAddress(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8081}
	assert.Equal(t, "127.0.0.1:8081", cfg.Address())
}

func TestFormattingOptions(t *testing.T) {
	formatting := FormattingConfig{
		Locale:        "de-DE",
		DefaultLocale: "en-US",
		DecimalDigits: 3,
		AllowNegative: true,
	}

	cfg, err := currencyinput.NewConfig(append(formatting.Options(), currencyinput.WithLogger(currencyinput.NopLogger))...)
	require.NoError(t, err)

	profile := cfg.Profile()
	assert.Equal(t, "de-DE", profile.LocaleID)
	assert.Equal(t, "EUR", profile.CurrencyCode)
	assert.Equal(t, 3, profile.DecimalDigits)
	assert.True(t, profile.AllowNegative)
}

func TestFormattingOptionsDefaults(t *testing.T) {
	formatting := FormattingConfig{DecimalDigits: -1}
	assert.Empty(t, formatting.Options())
}
