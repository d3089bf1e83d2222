package currencyinput

import (
	"fmt"
)

// Formatter renders major unit amounts as locale formatted currency strings.
// Every call walks the fallback chain: the profile locale and currency, the
// profile default locale with its own currency, then US dollars in en-US.
type Formatter struct {
	catalog Catalog
	logger  Logger
}

// NewFormatter builds a Formatter over catalog. A nil logger uses slog.Default.
func NewFormatter(catalog Catalog, logger Logger) *Formatter {
	if logger == nil {
		logger = defaultLogger()
	}
	return &Formatter{catalog: catalog, logger: logger}
}

// Format renders value with exactly profile.DecimalDigits fractional digits.
// It fails only when every fallback step fails, with an error matching
// ErrFallbackExhausted, or when the profile itself is invalid.
func (f *Formatter) Format(value float64, profile CurrencyProfile) (string, error) {
	display, _, err := f.FormatStep(value, profile)
	return display, err
}

// FormatStep is Format that also reports which fallback step rendered the text.
func (f *Formatter) FormatStep(value float64, profile CurrencyProfile) (string, FallbackStep, error) {
	if err := profile.Validate(); err != nil {
		return "", "", err
	}

	var display string
	step, err := firstSuccess(fallbackChain(profile), f.logger, func(attempt fallbackAttempt) error {
		format, info, err := f.resolve(attempt)
		if err != nil {
			return err
		}
		out, err := renderAmount(value, profile.DecimalDigits, format, info.Symbol)
		if err != nil {
			return fmt.Errorf("render %s in %s: %w", info.CurrencyCode, attempt.locale, err)
		}
		display = out
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return display, step, nil
}

// ResolveCurrency resolves the default currency of profile.LocaleID through the
// same chain Format uses, ignoring profile.CurrencyCode.
func (f *Formatter) ResolveCurrency(profile CurrencyProfile) (CurrencyInfo, FallbackStep, error) {
	profile.CurrencyCode = ""

	var info CurrencyInfo
	step, err := firstSuccess(fallbackChain(profile), f.logger, func(attempt fallbackAttempt) error {
		_, resolved, err := f.resolve(attempt)
		if err != nil {
			return err
		}
		info = resolved
		return nil
	})
	if err != nil {
		return CurrencyInfo{}, "", err
	}
	return info, step, nil
}

// Symbol returns the symbol for code in locale, falling back to code.
func (f *Formatter) Symbol(locale, code string) string {
	if f.catalog == nil {
		return xtextSymbol(locale, code)
	}
	return f.catalog.Symbol(locale, code)
}

// Catalog returns the catalog backing the formatter.
func (f *Formatter) Catalog() Catalog {
	return f.catalog
}

func (f *Formatter) resolve(attempt fallbackAttempt) (LocaleFormat, CurrencyInfo, error) {
	format, info, err := f.lookup(attempt)
	if err != nil && attempt.step == StepUniversal {
		return universalFormat, CurrencyInfo{
			CurrencyCode:          UniversalCurrency,
			DefaultFractionDigits: 2,
			Symbol:                universalSymbol,
		}, nil
	}
	return format, info, err
}

func (f *Formatter) lookup(attempt fallbackAttempt) (LocaleFormat, CurrencyInfo, error) {
	if f.catalog == nil {
		return LocaleFormat{}, CurrencyInfo{}, fmt.Errorf("%w: no catalog", ErrUnsupportedLocaleOrCurrency)
	}

	format, err := f.catalog.LookupFormat(attempt.locale)
	if err != nil {
		return LocaleFormat{}, CurrencyInfo{}, err
	}

	if attempt.currency == "" {
		info, err := f.catalog.LookupCurrency(attempt.locale)
		if err != nil {
			return LocaleFormat{}, CurrencyInfo{}, err
		}
		return format, info, nil
	}

	digits, err := DefaultFractionDigits(attempt.currency)
	if err != nil {
		return LocaleFormat{}, CurrencyInfo{}, err
	}
	return format, CurrencyInfo{
		CurrencyCode:          attempt.currency,
		DefaultFractionDigits: digits,
		Symbol:                f.catalog.Symbol(attempt.locale, attempt.currency),
	}, nil
}
