package currencyinput

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Catalog supplies locale and currency data to the formatter.
// Lookups that cannot be satisfied return an error matching ErrUnsupportedLocaleOrCurrency.
type Catalog interface {
	// LookupCurrency returns the default currency of locale.
	LookupCurrency(locale string) (CurrencyInfo, error)
	// LookupFormat returns separators and patterns for locale.
	LookupFormat(locale string) (LocaleFormat, error)
	// Symbol returns the symbol used for code when rendered in locale.
	Symbol(locale, code string) string
	// DefaultLocale returns the catalog's preferred locale, may be empty.
	DefaultLocale() string
	// Locales lists every locale the catalog defines, sorted.
	Locales() []string
}

// CatalogData is the serialized form of a StaticCatalog.
type CatalogData struct {
	DefaultLocale   string                  `json:"default_locale" yaml:"default_locale"`
	CurrencySymbols map[string]string       `json:"currency_symbols" yaml:"currency_symbols"`
	Locales         map[string]LocaleFormat `json:"locales" yaml:"locales"`
}

// StaticCatalog is an immutable Catalog built from CatalogData.
type StaticCatalog struct {
	defaultLocale string
	symbols       map[string]string
	locales       map[string]LocaleFormat
	codes         []string
}

var _ Catalog = &StaticCatalog{}

// NewStaticCatalog validates data and builds a catalog snapshot.
func NewStaticCatalog(data *CatalogData) (*StaticCatalog, error) {
	if data == nil || len(data.Locales) == 0 {
		return nil, fmt.Errorf("currencyinput: catalog has no locales")
	}

	locales := make(map[string]LocaleFormat, len(data.Locales))
	for original, format := range data.Locales {
		code := canonicalLocale(original)
		if code == "" {
			return nil, fmt.Errorf("currencyinput: catalog: empty locale code")
		}
		if _, exists := locales[code]; exists {
			return nil, fmt.Errorf("currencyinput: catalog: duplicate locale %q", code)
		}
		normalized, err := normalizeLocaleFormat(code, format)
		if err != nil {
			return nil, err
		}
		locales[code] = normalized
	}

	symbols := make(map[string]string, len(data.CurrencySymbols))
	for code, symbol := range data.CurrencySymbols {
		symbols[strings.ToUpper(strings.TrimSpace(code))] = symbol
	}

	defaultLocale := canonicalLocale(data.DefaultLocale)
	if defaultLocale != "" {
		if _, exists := locales[defaultLocale]; !exists {
			return nil, fmt.Errorf("currencyinput: catalog: default locale %q not defined", defaultLocale)
		}
	}

	codes := make([]string, 0, len(locales))
	for code := range locales {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return &StaticCatalog{
		defaultLocale: defaultLocale,
		symbols:       symbols,
		locales:       locales,
		codes:         codes,
	}, nil
}

func normalizeLocaleFormat(locale string, format LocaleFormat) (LocaleFormat, error) {
	if format.Currency != "" {
		code := strings.ToUpper(strings.TrimSpace(format.Currency))
		if _, err := currency.ParseISO(code); err != nil {
			return LocaleFormat{}, fmt.Errorf("currencyinput: catalog: locale %q currency %q: %w", locale, format.Currency, err)
		}
		format.Currency = code
	}
	if format.DecimalSeparator == "" {
		format.DecimalSeparator = "."
	}
	if format.Grouping < 0 || format.SecondaryGrouping < 0 {
		return LocaleFormat{}, fmt.Errorf("currencyinput: catalog: locale %q has negative grouping", locale)
	}
	if format.PositivePattern == "" {
		format.PositivePattern = "¤#"
	}
	if err := validatePattern(format.PositivePattern); err != nil {
		return LocaleFormat{}, fmt.Errorf("currencyinput: catalog: locale %q positive pattern: %w", locale, err)
	}
	if format.NegativePattern != "" {
		if err := validatePattern(format.NegativePattern); err != nil {
			return LocaleFormat{}, fmt.Errorf("currencyinput: catalog: locale %q negative pattern: %w", locale, err)
		}
	}
	if len(format.Symbols) > 0 {
		symbols := make(map[string]string, len(format.Symbols))
		for code, symbol := range format.Symbols {
			symbols[strings.ToUpper(strings.TrimSpace(code))] = symbol
		}
		format.Symbols = symbols
	}
	return format, nil
}

// DefaultLocale returns the configured default locale.
func (c *StaticCatalog) DefaultLocale() string {
	if c == nil {
		return ""
	}
	return c.defaultLocale
}

// Locales returns every locale in the catalog, sorted alphabetically.
func (c *StaticCatalog) Locales() []string {
	if c == nil || len(c.codes) == 0 {
		return nil
	}
	out := make([]string, len(c.codes))
	copy(out, c.codes)
	return out
}

// Has reports whether locale, or one of its parents, is defined.
func (c *StaticCatalog) Has(locale string) bool {
	_, _, ok := c.resolve(locale)
	return ok
}

// LookupFormat returns the format of locale or of its nearest defined parent.
func (c *StaticCatalog) LookupFormat(locale string) (LocaleFormat, error) {
	format, _, ok := c.resolve(locale)
	if !ok {
		return LocaleFormat{}, fmt.Errorf("%w: locale %q", ErrUnsupportedLocaleOrCurrency, locale)
	}
	return format, nil
}

// LookupCurrency resolves the default currency of locale. An explicit currency on
// the exact locale wins, then the currency of the locale's region, then the
// nearest parent that declares one.
func (c *StaticCatalog) LookupCurrency(locale string) (CurrencyInfo, error) {
	format, matched, ok := c.resolve(locale)
	if !ok {
		return CurrencyInfo{}, fmt.Errorf("%w: locale %q", ErrUnsupportedLocaleOrCurrency, locale)
	}

	code := ""
	if matched == canonicalLocale(locale) {
		code = format.Currency
	}
	if code == "" {
		if region, ok := regionFromLocale(locale); ok {
			if unit, ok := currency.FromRegion(region); ok {
				code = unit.String()
			}
		}
	}
	if code == "" {
		for _, candidate := range localeCandidates(locale) {
			if entry, ok := c.locales[candidate]; ok && entry.Currency != "" {
				code = entry.Currency
				break
			}
		}
	}
	if code == "" {
		return CurrencyInfo{}, fmt.Errorf("%w: no currency for locale %q", ErrUnsupportedLocaleOrCurrency, locale)
	}

	digits, err := DefaultFractionDigits(code)
	if err != nil {
		return CurrencyInfo{}, err
	}

	return CurrencyInfo{
		CurrencyCode:          code,
		DefaultFractionDigits: digits,
		Symbol:                c.Symbol(locale, code),
	}, nil
}

// Symbol returns the locale specific symbol for code, then the catalog wide
// symbol, then the symbol golang.org/x/text renders, and finally code itself.
func (c *StaticCatalog) Symbol(locale, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if c != nil {
		for _, candidate := range localeCandidates(locale) {
			if entry, ok := c.locales[candidate]; ok {
				if symbol, ok := entry.Symbols[code]; ok && symbol != "" {
					return symbol
				}
			}
		}
		if symbol, ok := c.symbols[code]; ok && symbol != "" {
			return symbol
		}
	}
	return xtextSymbol(locale, code)
}

func (c *StaticCatalog) resolve(locale string) (LocaleFormat, string, bool) {
	if c == nil {
		return LocaleFormat{}, "", false
	}
	for _, candidate := range localeCandidates(locale) {
		if format, ok := c.locales[candidate]; ok {
			return format, candidate, true
		}
	}
	return LocaleFormat{}, "", false
}

// DefaultFractionDigits returns the ISO 4217 standard scale of code.
func DefaultFractionDigits(code string) (int, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return 0, fmt.Errorf("%w: currency %q: %v", ErrUnsupportedLocaleOrCurrency, code, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale, nil
}

// xtextSymbol derives a symbol by formatting an amount through a locale printer
// and stripping the number from the output.
func xtextSymbol(locale, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil || unit.String() == "XXX" {
		return code
	}

	tag := language.Make(normalizeLocale(locale))
	if tag == language.Und {
		tag = language.AmericanEnglish
	}

	formatted := message.NewPrinter(tag).Sprintf("%v", currency.Symbol(unit.Amount(1)))
	symbol := strings.TrimFunc(formatted, func(r rune) bool {
		return unicode.IsDigit(r) || unicode.IsSpace(r) || r == '.' || r == ','
	})
	if symbol == "" {
		return unit.String()
	}
	return symbol
}
