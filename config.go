package currencyinput

import (
	"fmt"
	"strings"
)

// Config captures controller and formatter setup
type Config struct {
	LocaleID        string
	DefaultLocaleID string
	CurrencyCode    string
	AllowNegative   bool
	Catalog         Catalog
	Logger          Logger
	Hooks           []FormatHook
	ClearedDisplay  ClearedDisplay

	// DisableDefaultHint stops the controller from writing the currency
	// symbol or code into an empty host hint.
	DisableDefaultHint bool

	decimalDigits    int
	hasDecimalDigits bool

	catalogPath      string
	catalogOverrides map[string]string
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options. Missing values are resolved in
// order: the default locale from the catalog (then en-US), the locale from the
// default locale, the currency from the locale and the decimal digits from the
// currency.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyCatalog(); err != nil {
		return nil, err
	}

	if cfg.Logger == nil {
		cfg.Logger = defaultLogger()
	}

	if cfg.DefaultLocaleID == "" {
		cfg.DefaultLocaleID = canonicalLocale(cfg.Catalog.DefaultLocale())
	}
	if cfg.DefaultLocaleID == "" {
		cfg.DefaultLocaleID = UniversalLocale
	}
	if cfg.LocaleID == "" {
		cfg.LocaleID = cfg.DefaultLocaleID
	}

	if err := cfg.applyCurrency(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyCatalog() error {
	if c.Catalog != nil {
		return nil
	}

	if c.catalogPath == "" && len(c.catalogOverrides) == 0 {
		catalog, err := DefaultCatalog()
		if err != nil {
			return err
		}
		c.Catalog = catalog
		return nil
	}

	loader := NewCatalogLoader(c.catalogPath)
	for locale, path := range c.catalogOverrides {
		loader.AddOverride(locale, path)
	}
	data, err := loader.Load()
	if err != nil {
		return err
	}
	catalog, err := NewStaticCatalog(data)
	if err != nil {
		return err
	}
	c.Catalog = catalog
	return nil
}

func (c *Config) applyCurrency() error {
	if c.CurrencyCode == "" {
		info, _, err := c.BuildFormatter().ResolveCurrency(c.Profile())
		if err != nil {
			return fmt.Errorf("currencyinput: resolve currency for %q: %w", c.LocaleID, err)
		}
		c.CurrencyCode = info.CurrencyCode
		if !c.hasDecimalDigits {
			c.decimalDigits = info.DefaultFractionDigits
			c.hasDecimalDigits = true
		}
	}

	if !c.hasDecimalDigits {
		digits, err := DefaultFractionDigits(c.CurrencyCode)
		if err != nil {
			c.Logger.Warn("currencyinput: unknown currency, using universal decimal digits",
				"currency", c.CurrencyCode,
				"error", err,
			)
			digits, _ = DefaultFractionDigits(UniversalCurrency)
		}
		c.decimalDigits = digits
		c.hasDecimalDigits = true
	}
	return nil
}

// DecimalDigits returns the configured or derived fractional digits.
func (c *Config) DecimalDigits() int {
	return c.decimalDigits
}

// Profile returns the CurrencyProfile described by the config.
func (c *Config) Profile() CurrencyProfile {
	return CurrencyProfile{
		LocaleID:        c.LocaleID,
		CurrencyCode:    c.CurrencyCode,
		DecimalDigits:   c.decimalDigits,
		DefaultLocaleID: c.DefaultLocaleID,
		AllowNegative:   c.AllowNegative,
	}
}

// BuildFormatter returns a Formatter over the configured catalog.
func (c *Config) BuildFormatter() *Formatter {
	return NewFormatter(c.Catalog, c.Logger)
}

// BuildController returns a Controller driving host. A nil host yields a
// headless controller that can be attached later.
func (c *Config) BuildController(host HostField) (*Controller, error) {
	if err := c.Profile().Validate(); err != nil {
		return nil, err
	}
	return newController(c, host)
}

// WithLocale sets the active locale, normally the device locale
func WithLocale(locale string) Option {
	return func(c *Config) error {
		c.LocaleID = canonicalLocale(locale)
		return nil
	}
}

// WithDefaultLocale sets the locale tried when the active one fails
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocaleID = canonicalLocale(locale)
		return nil
	}
}

// WithCurrency sets the ISO 4217 currency code
func WithCurrency(code string) Option {
	return func(c *Config) error {
		c.CurrencyCode = strings.ToUpper(strings.TrimSpace(code))
		return nil
	}
}

// WithDecimalDigits overrides the currency's default fractional digits
func WithDecimalDigits(digits int) Option {
	return func(c *Config) error {
		if err := validateDecimalDigits(digits); err != nil {
			return err
		}
		c.decimalDigits = digits
		c.hasDecimalDigits = true
		return nil
	}
}

func WithAllowNegativeValues(allow bool) Option {
	return func(c *Config) error {
		c.AllowNegative = allow
		return nil
	}
}

func WithCatalog(catalog Catalog) Option {
	return func(c *Config) error {
		c.Catalog = catalog
		return nil
	}
}

// WithCatalogData merges a YAML or JSON catalog file over the embedded data
func WithCatalogData(path string) Option {
	return func(c *Config) error {
		c.catalogPath = path
		return nil
	}
}

// WithCatalogOverride merges a catalog file after the main data for locale
func WithCatalogOverride(locale, path string) Option {
	return func(c *Config) error {
		if locale == "" || path == "" {
			return nil
		}
		if c.catalogOverrides == nil {
			c.catalogOverrides = make(map[string]string)
		}
		c.catalogOverrides[locale] = path
		return nil
	}
}

func WithLogger(logger Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

func WithFormatHooks(hooks ...FormatHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}

func WithClearedDisplay(mode ClearedDisplay) Option {
	return func(c *Config) error {
		c.ClearedDisplay = mode
		return nil
	}
}

// WithDefaultHint toggles the currency hint written into empty host hints
func WithDefaultHint(enabled bool) Option {
	return func(c *Config) error {
		c.DisableDefaultHint = !enabled
		return nil
	}
}
