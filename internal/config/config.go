package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	currencyinput "github.com/goliatone/go-currency-input"
)

// Config holds the settings of the currencyinput service.
type Config struct {
	Environment string
	Server      ServerConfig
	Formatting  FormattingConfig
	Telemetry   TelemetryConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxKeystrokes   int
	// BodyLimit caps request bodies, in echo's size notation ("64K", "1M").
	BodyLimit string
}

// FormattingConfig holds the default currency profile served by the API.
type FormattingConfig struct {
	Locale        string
	DefaultLocale string
	Currency      string
	// DecimalDigits below zero means the currency's default.
	DecimalDigits int
	AllowNegative bool
	CatalogPath   string
	ProfilePath   string
}

// TelemetryConfig holds tracing settings.
type TelemetryConfig struct {
	Enabled     bool
	ServiceName string
}

// Load reads configuration from the environment. Variables found in files
// (".env" when none are given) are loaded first and never override the
// process environment.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", ""),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxKeystrokes:   getEnvAsInt("SERVER_MAX_KEYSTROKES", 256),
			BodyLimit:       getEnv("SERVER_BODY_LIMIT", "64K"),
		},
		Formatting: FormattingConfig{
			Locale:        getEnv("CURRENCY_LOCALE", ""),
			DefaultLocale: getEnv("CURRENCY_DEFAULT_LOCALE", currencyinput.UniversalLocale),
			Currency:      getEnv("CURRENCY_CODE", ""),
			DecimalDigits: getEnvAsInt("CURRENCY_DECIMAL_DIGITS", -1),
			AllowNegative: getEnvAsBool("CURRENCY_ALLOW_NEGATIVE", false),
			CatalogPath:   getEnv("CURRENCY_CATALOG_PATH", ""),
			ProfilePath:   getEnv("CURRENCY_PROFILE_PATH", ""),
		},
		Telemetry: TelemetryConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", true),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "currencyinput"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT %d out of range", c.Server.Port)
	}
	if c.Server.MaxKeystrokes <= 0 {
		return fmt.Errorf("SERVER_MAX_KEYSTROKES must be positive")
	}
	if c.Formatting.DecimalDigits > currencyinput.MaxDecimalDigits {
		return fmt.Errorf("CURRENCY_DECIMAL_DIGITS: %w", currencyinput.ErrInvalidDecimalDigits)
	}
	return nil
}

// Address returns the listen address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Options converts the formatting settings into currencyinput options. The
// profile file is applied first so explicit variables win.
func (f FormattingConfig) Options() []currencyinput.Option {
	var opts []currencyinput.Option
	if f.ProfilePath != "" {
		opts = append(opts, currencyinput.WithProfileFile(f.ProfilePath))
	}
	if f.CatalogPath != "" {
		opts = append(opts, currencyinput.WithCatalogData(f.CatalogPath))
	}
	if f.Locale != "" {
		opts = append(opts, currencyinput.WithLocale(f.Locale))
	}
	if f.DefaultLocale != "" {
		opts = append(opts, currencyinput.WithDefaultLocale(f.DefaultLocale))
	}
	if f.Currency != "" {
		opts = append(opts, currencyinput.WithCurrency(f.Currency))
	}
	if f.DecimalDigits >= 0 {
		opts = append(opts, currencyinput.WithDecimalDigits(f.DecimalDigits))
	}
	if f.AllowNegative {
		opts = append(opts, currencyinput.WithAllowNegativeValues(true))
	}
	return opts
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
