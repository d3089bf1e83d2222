package server

// ProfileRequest overrides the server's default currency profile.
type ProfileRequest struct {
	Locale        string `json:"locale,omitempty" example:"fr-FR"`
	Currency      string `json:"currency,omitempty" example:"EUR"`
	DecimalDigits *int   `json:"decimal_digits,omitempty" example:"2"`
	DefaultLocale string `json:"default_locale,omitempty" example:"en-US"`
	AllowNegative *bool  `json:"allow_negative,omitempty"`
}

// FormatRequest formats either minor units or a digit string.
type FormatRequest struct {
	ProfileRequest
	MinorUnits *int64 `json:"minor_units,omitempty" example:"100000"`
	Input      string `json:"input,omitempty" example:"$1,000.00"`
}

// FormatResponse is the formatted amount.
type FormatResponse struct {
	Display       string `json:"display" example:"$1,000.00"`
	Cursor        int    `json:"cursor" example:"9"`
	MinorUnits    int64  `json:"minor_units" example:"100000"`
	Locale        string `json:"locale" example:"en-US"`
	Currency      string `json:"currency" example:"USD"`
	DecimalDigits int    `json:"decimal_digits" example:"2"`
	Step          string `json:"step" example:"primary"`
}

// KeystrokesRequest replays edits against a headless field. Inputs replace the
// whole field text; Keys are typed one rune at a time after the inputs, with
// '\b' deleting the rune before the caret.
type KeystrokesRequest struct {
	ProfileRequest
	Inputs []string `json:"inputs,omitempty"`
	Keys   string   `json:"keys,omitempty" example:"12345"`
}

// KeystrokeStep is the field after one edit.
type KeystrokeStep struct {
	Input      string `json:"input"`
	Display    string `json:"display"`
	Cursor     int    `json:"cursor"`
	MinorUnits int64  `json:"minor_units"`
	RolledBack bool   `json:"rolled_back,omitempty"`
	Step       string `json:"step,omitempty"`
}

// KeystrokesResponse lists every step and the final value.
type KeystrokesResponse struct {
	Steps    []KeystrokeStep `json:"steps"`
	Display  string          `json:"display"`
	RawValue int64           `json:"raw_value"`
	Amount   string          `json:"amount,omitempty" example:"EUR 123.45"`
	Hint     string          `json:"hint,omitempty"`
}

// LocaleItem describes one catalog locale.
type LocaleItem struct {
	Locale        string `json:"locale" example:"en-GB"`
	Currency      string `json:"currency" example:"GBP"`
	Symbol        string `json:"symbol" example:"£"`
	DecimalDigits int    `json:"decimal_digits" example:"2"`
}

// LocalesResponse lists the catalog.
type LocalesResponse struct {
	DefaultLocale string       `json:"default_locale"`
	Locales       []LocaleItem `json:"locales"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
