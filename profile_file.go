package currencyinput

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProfileFile is the on disk form of a controller configuration.
type ProfileFile struct {
	Locale         string `json:"locale" yaml:"locale"`
	DefaultLocale  string `json:"default_locale" yaml:"default_locale"`
	Currency       string `json:"currency" yaml:"currency"`
	DecimalDigits  *int   `json:"decimal_digits" yaml:"decimal_digits"`
	AllowNegative  bool   `json:"allow_negative" yaml:"allow_negative"`
	ClearedDisplay string `json:"cleared_display" yaml:"cleared_display"`
	DefaultHint    *bool  `json:"default_hint" yaml:"default_hint"`
	Catalog        string `json:"catalog" yaml:"catalog"`
}

// LoadProfileConfig reads a YAML or JSON profile file.
func LoadProfileConfig(path string) (*ProfileFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("currencyinput: load profile: %w", err)
	}

	var file ProfileFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("currencyinput: decode profile %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("currencyinput: yaml parse error in %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("currencyinput: unsupported profile extension %s", ext)
	}

	if file.Catalog != "" && !filepath.IsAbs(file.Catalog) {
		file.Catalog = filepath.Join(filepath.Dir(path), file.Catalog)
	}
	return &file, nil
}

// Options converts the file into config options. Unset fields add no option.
func (p *ProfileFile) Options() ([]Option, error) {
	if p == nil {
		return nil, nil
	}

	cleared, err := ParseClearedDisplay(p.ClearedDisplay)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithAllowNegativeValues(p.AllowNegative),
		WithClearedDisplay(cleared),
	}
	if p.Locale != "" {
		opts = append(opts, WithLocale(p.Locale))
	}
	if p.DefaultLocale != "" {
		opts = append(opts, WithDefaultLocale(p.DefaultLocale))
	}
	if p.Currency != "" {
		opts = append(opts, WithCurrency(p.Currency))
	}
	if p.DecimalDigits != nil {
		if err := validateDecimalDigits(*p.DecimalDigits); err != nil {
			return nil, err
		}
		opts = append(opts, WithDecimalDigits(*p.DecimalDigits))
	}
	if p.DefaultHint != nil {
		opts = append(opts, WithDefaultHint(*p.DefaultHint))
	}
	if p.Catalog != "" {
		opts = append(opts, WithCatalogData(p.Catalog))
	}
	return opts, nil
}

// WithProfileFile applies the options stored in a profile file
func WithProfileFile(path string) Option {
	return func(c *Config) error {
		file, err := LoadProfileConfig(path)
		if err != nil {
			return err
		}
		opts, err := file.Options()
		if err != nil {
			return err
		}
		for _, opt := range opts {
			if err := opt(c); err != nil {
				return err
			}
		}
		return nil
	}
}
