package currencyinput

import "fmt"

const (
	// MinDecimalDigits and MaxDecimalDigits bound CurrencyProfile.DecimalDigits.
	MinDecimalDigits = 0
	MaxDecimalDigits = 340

	// MaxRawInputLength caps the digit string so float64 conversion stays exact.
	MaxRawInputLength = 15

	// UniversalLocale and UniversalCurrency form the last fallback step.
	UniversalLocale   = "en-US"
	UniversalCurrency = "USD"
)

// CurrencyProfile describes how raw digits are interpreted and rendered.
type CurrencyProfile struct {
	LocaleID        string `json:"locale" yaml:"locale"`
	CurrencyCode    string `json:"currency" yaml:"currency"`
	DecimalDigits   int    `json:"decimal_digits" yaml:"decimal_digits"`
	DefaultLocaleID string `json:"default_locale" yaml:"default_locale"`
	AllowNegative   bool   `json:"allow_negative" yaml:"allow_negative"`
}

// Validate reports configuration errors in the profile.
func (p CurrencyProfile) Validate() error {
	return validateDecimalDigits(p.DecimalDigits)
}

func validateDecimalDigits(digits int) error {
	if digits < MinDecimalDigits || digits > MaxDecimalDigits {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidDecimalDigits, digits, MinDecimalDigits, MaxDecimalDigits)
	}
	return nil
}

// InputState is the mutable state owned by a single Controller.
type InputState struct {
	RawDigits       string
	IsNegative      bool
	LastGoodDisplay string
}

// FormatResult is the output of one formatting pass.
type FormatResult struct {
	DisplayText     string `json:"display"`
	CursorIndex     int    `json:"cursor"`
	MinorUnitsValue int64  `json:"minor_units"`
	// RolledBack is set when the pass failed and LastGoodDisplay was restored.
	RolledBack bool `json:"rolled_back,omitempty"`
	// Step names the fallback step that rendered DisplayText, empty when nothing was formatted.
	Step FallbackStep `json:"step,omitempty"`
}

// CurrencyInfo is the catalog answer for a locale.
type CurrencyInfo struct {
	CurrencyCode          string
	DefaultFractionDigits int
	Symbol                string
}

// LocaleFormat holds the separators and patterns used to render amounts for a locale.
// Patterns use '¤' for the currency symbol and '#' for the formatted number.
type LocaleFormat struct {
	Currency          string            `json:"currency" yaml:"currency"`
	Symbols           map[string]string `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	DecimalSeparator  string            `json:"decimal_separator" yaml:"decimal_separator"`
	GroupSeparator    string            `json:"group_separator" yaml:"group_separator"`
	Grouping          int               `json:"grouping" yaml:"grouping"`
	SecondaryGrouping int               `json:"secondary_grouping,omitempty" yaml:"secondary_grouping,omitempty"`
	PositivePattern   string            `json:"positive_pattern" yaml:"positive_pattern"`
	NegativePattern   string            `json:"negative_pattern" yaml:"negative_pattern"`
}

// ClearedDisplay selects what the controller shows once the input is cleared.
type ClearedDisplay int

const (
	// ClearedDisplayEmpty shows an empty field so the host hint is visible.
	ClearedDisplayEmpty ClearedDisplay = iota
	// ClearedDisplayZero shows the formatted zero amount.
	ClearedDisplayZero
)

// ParseClearedDisplay maps "empty" and "zero" to ClearedDisplay values.
func ParseClearedDisplay(value string) (ClearedDisplay, error) {
	switch value {
	case "", "empty":
		return ClearedDisplayEmpty, nil
	case "zero":
		return ClearedDisplayZero, nil
	default:
		return ClearedDisplayEmpty, fmt.Errorf("currencyinput: unknown cleared display %q", value)
	}
}
