package currencyinput

import (
	"errors"
	"strings"
	"testing"
)

// countingField wraps MemoryField and counts SetText calls.
type countingField struct {
	*MemoryField
	writes int
}

func (f *countingField) SetText(text string) {
	f.writes++
	f.MemoryField.SetText(text)
}

func TestControllerTypingRightToLeft(t *testing.T) {
	field := NewMemoryField()
	ctrl := newTestController(t, field)

	steps := []struct {
		key     string
		display string
		raw     int64
	}{
		{key: "1", display: "$0.01", raw: 1},
		{key: "2", display: "$0.12", raw: 12},
		{key: "3", display: "$1.23", raw: 123},
		{key: "4", display: "$12.34", raw: 1234},
		{key: "5", display: "$123.45", raw: 12345},
		{key: "6", display: "$1,234.56", raw: 123456},
	}

	for _, step := range steps {
		field.Insert(step.key)
		if got := field.CurrentText(); got != step.display {
			t.Fatalf("after %q display = %q; want %q", step.key, got, step.display)
		}
		if got := ctrl.RawValue(); got != step.raw {
			t.Fatalf("after %q RawValue() = %d; want %d", step.key, got, step.raw)
		}
		if got, want := field.Selection(), PlaceCursor(step.display); got != want {
			t.Fatalf("after %q selection = %d; want %d", step.key, got, want)
		}
	}

	field.Backspace()
	if got := field.CurrentText(); got != "$123.45" {
		t.Fatalf("after backspace display = %q; want $123.45", got)
	}
	if got := ctrl.RawValue(); got != 12345 {
		t.Fatalf("after backspace RawValue() = %d; want 12345", got)
	}
}

func TestControllerAbsorbsEcho(t *testing.T) {
	field := &countingField{MemoryField: NewMemoryField()}
	passes := 0
	hook := FormatHookFuncs{After: func(*FormatHookContext) { passes++ }}

	cfg, err := NewConfig(WithLogger(NopLogger), WithFormatHooks(hook))
	if err != nil {
		t.Fatalf("NewConfig() error: %v", err)
	}
	ctrl, err := cfg.BuildController(field)
	if err != nil {
		t.Fatalf("BuildController() error: %v", err)
	}

	field.Insert("7")
	if passes != 1 {
		t.Fatalf("passes after one keystroke = %d; want 1", passes)
	}
	if field.writes != 1 {
		t.Fatalf("SetText calls = %d; want 1", field.writes)
	}

	// A late echo delivered while idle is processed again and changes nothing.
	ctrl.OnTextChanged()
	if passes != 2 {
		t.Fatalf("passes after late echo = %d; want 2", passes)
	}
	if field.writes != 1 {
		t.Fatalf("SetText calls after late echo = %d; want 1", field.writes)
	}
	if got := field.CurrentText(); got != "$0.07" {
		t.Fatalf("display = %q; want $0.07", got)
	}

	field.Insert("8")
	if passes != 3 || ctrl.RawValue() != 78 {
		t.Fatalf("second keystroke: passes=%d raw=%d; want 3 and 78", passes, ctrl.RawValue())
	}
}

func TestControllerRollbackOnTooManyDigits(t *testing.T) {
	field := NewMemoryField()
	logger := &recordingLogger{}
	ctrl := newTestController(t, field, WithLogger(logger))

	field.SetText(strings.Repeat("9", MaxRawInputLength))
	want := "$9,999,999,999,999.99"
	if got := field.CurrentText(); got != want {
		t.Fatalf("display = %q; want %q", got, want)
	}

	field.Insert("1")
	if got := field.CurrentText(); got != want {
		t.Fatalf("display after 16th digit = %q; want %q", got, want)
	}
	if got := ctrl.RawValue(); got != 999999999999999 {
		t.Fatalf("RawValue() = %d; want 999999999999999", got)
	}
	if !ctrl.Result().RolledBack {
		t.Fatalf("Result().RolledBack = false; want true")
	}
	if logger.count("debug") != 1 {
		t.Fatalf("debug records = %d; want 1", logger.count("debug"))
	}

	err := ctrl.SetValue(1234567890123456)
	if !errors.Is(err, ErrInputTooLong) {
		t.Fatalf("SetValue(16 digits) error = %v; want ErrInputTooLong", err)
	}
	if got := field.CurrentText(); got != want {
		t.Fatalf("display after SetValue rollback = %q; want %q", got, want)
	}
}

func TestControllerClearedInput(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		input string
		want  string
	}{
		{name: "separator only", input: ".", want: ""},
		{name: "symbol only", input: "$", want: ""},
		{name: "empty", input: "", want: ""},
		{name: "zero display", opts: []Option{WithClearedDisplay(ClearedDisplayZero)}, input: ".", want: "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := NewMemoryField()
			ctrl := newTestController(t, field, tt.opts...)
			field.SetText("$12.34")

			field.SetText(tt.input)
			if got := field.CurrentText(); got != tt.want {
				t.Fatalf("display = %q; want %q", got, tt.want)
			}
			if ctrl.RawValue() != 0 {
				t.Fatalf("RawValue() = %d; want 0", ctrl.RawValue())
			}
			if ctrl.State().RawDigits != "" {
				t.Fatalf("RawDigits = %q; want empty", ctrl.State().RawDigits)
			}
		})
	}
}

func TestControllerNegativeValues(t *testing.T) {
	tests := []struct {
		name    string
		allow   bool
		input   string
		display string
		raw     int64
	}{
		{name: "allowed", allow: true, input: "-$1,000", display: "-$10.00", raw: -1000},
		{name: "disallowed", allow: false, input: "-$1,000", display: "$10.00", raw: 1000},
		{name: "pending sign", allow: true, input: "-", display: "-", raw: 0},
		{name: "pending sign disallowed", allow: false, input: "-", display: "", raw: 0},
		{name: "sign typed after amount", allow: true, input: "$12.34-", display: "-$12.34", raw: -1234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := NewMemoryField()
			ctrl := newTestController(t, field, WithAllowNegativeValues(tt.allow))

			field.SetText(tt.input)
			if got := field.CurrentText(); got != tt.display {
				t.Fatalf("display = %q; want %q", got, tt.display)
			}
			if got := ctrl.RawValue(); got != tt.raw {
				t.Fatalf("RawValue() = %d; want %d", got, tt.raw)
			}
		})
	}
}

func TestControllerPendingSignThenDigits(t *testing.T) {
	field := NewMemoryField()
	ctrl := newTestController(t, field, WithAllowNegativeValues(true))

	typeKeys(field, "-", "5")
	if got := field.CurrentText(); got != "-$0.05" {
		t.Fatalf("display = %q; want -$0.05", got)
	}
	if ctrl.RawValue() != -5 {
		t.Fatalf("RawValue() = %d; want -5", ctrl.RawValue())
	}

	ctrl.SetAllowNegativeValues(false)
	if got := field.CurrentText(); got != "$0.05" {
		t.Fatalf("display after disallowing negatives = %q; want $0.05", got)
	}
	if ctrl.RawValue() != 5 {
		t.Fatalf("RawValue() = %d; want 5", ctrl.RawValue())
	}
}

func TestControllerSetValue(t *testing.T) {
	tests := []struct {
		name    string
		allow   bool
		value   int64
		display string
		raw     int64
	}{
		{name: "positive", value: 1337, display: "$13.37", raw: 1337},
		{name: "zero", value: 0, display: "$0.00", raw: 0},
		{name: "negative allowed", allow: true, value: -250, display: "-$2.50", raw: -250},
		{name: "negative stripped", value: -250, display: "$2.50", raw: 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := NewMemoryField()
			ctrl := newTestController(t, field, WithAllowNegativeValues(tt.allow))

			if err := ctrl.SetValue(tt.value); err != nil {
				t.Fatalf("SetValue(%d) error: %v", tt.value, err)
			}
			if got := field.CurrentText(); got != tt.display {
				t.Fatalf("SetValue(%d) display = %q; want %q", tt.value, got, tt.display)
			}
			if got := ctrl.RawValue(); got != tt.raw {
				t.Fatalf("SetValue(%d) RawValue() = %d; want %d", tt.value, got, tt.raw)
			}
		})
	}
}

func TestControllerDecimalDigits(t *testing.T) {
	field := NewMemoryField()
	ctrl := newTestController(t, field)
	field.SetText("1000")

	if err := ctrl.SetDecimalDigits(0); err != nil {
		t.Fatalf("SetDecimalDigits(0) error: %v", err)
	}
	if got := field.CurrentText(); got != "$1,000" {
		t.Fatalf("display with 0 digits = %q; want $1,000", got)
	}
	if ctrl.RawValue() != 1000 {
		t.Fatalf("RawValue() = %d; want 1000", ctrl.RawValue())
	}

	if err := ctrl.SetDecimalDigits(3); err != nil {
		t.Fatalf("SetDecimalDigits(3) error: %v", err)
	}
	if got := field.CurrentText(); got != "$1.000" {
		t.Fatalf("display with 3 digits = %q; want $1.000", got)
	}

	if err := ctrl.SetDecimalDigits(MaxDecimalDigits); err != nil {
		t.Fatalf("SetDecimalDigits(340) error: %v", err)
	}
	display := field.CurrentText()
	if !strings.HasPrefix(display, "$0.") || len(display)-len("$0.") != MaxDecimalDigits {
		t.Fatalf("display with 340 digits = %q; want $0. followed by 340 digits", display)
	}
	if ctrl.RawValue() != 1000 {
		t.Fatalf("RawValue() with 340 digits = %d; want 1000", ctrl.RawValue())
	}

	for _, digits := range []int{-1, MaxDecimalDigits + 1} {
		if err := ctrl.SetDecimalDigits(digits); !errors.Is(err, ErrInvalidDecimalDigits) {
			t.Fatalf("SetDecimalDigits(%d) error = %v; want ErrInvalidDecimalDigits", digits, err)
		}
	}
	if ctrl.DecimalDigits() != MaxDecimalDigits {
		t.Fatalf("DecimalDigits() = %d; want %d after rejected updates", ctrl.DecimalDigits(), MaxDecimalDigits)
	}
}

func TestControllerSetLocale(t *testing.T) {
	field := NewMemoryField()
	ctrl := newTestController(t, field)
	if field.Hint() != "$" {
		t.Fatalf("initial hint = %q; want $", field.Hint())
	}

	field.SetText("100000")
	if err := ctrl.SetLocale("en-GB"); err != nil {
		t.Fatalf("SetLocale(en-GB) error: %v", err)
	}
	if got := field.CurrentText(); got != "£1,000.00" {
		t.Fatalf("display = %q; want £1,000.00", got)
	}
	if ctrl.Currency() != "GBP" || field.Hint() != "GBP" {
		t.Fatalf("currency = %q hint = %q; want GBP", ctrl.Currency(), field.Hint())
	}

	if err := ctrl.SetLocale("fr_FR"); err != nil {
		t.Fatalf("SetLocale(fr_FR) error: %v", err)
	}
	if got := field.CurrentText(); got != "1\u00a0000,00\u00a0€" {
		t.Fatalf("display = %q; want 1 000,00 €", got)
	}
	if ctrl.Locale() != "fr-FR" || field.Hint() != "EUR" {
		t.Fatalf("locale = %q hint = %q; want fr-FR and EUR", ctrl.Locale(), field.Hint())
	}

	if err := ctrl.SetDecimalDigits(3); err != nil {
		t.Fatalf("SetDecimalDigits(3) error: %v", err)
	}
	if err := ctrl.SetLocale("ja-JP"); err != nil {
		t.Fatalf("SetLocale(ja-JP) error: %v", err)
	}
	if ctrl.DecimalDigits() != 0 {
		t.Fatalf("DecimalDigits() after SetLocale(ja-JP) = %d; want 0", ctrl.DecimalDigits())
	}
	if got := field.CurrentText(); got != "￥100,000" {
		t.Fatalf("display = %q; want ￥100,000", got)
	}

	if err := ctrl.SetLocale(" "); err == nil {
		t.Fatalf("SetLocale(blank) error = nil; want error")
	}
}

func TestControllerUnsupportedLocaleFallsBack(t *testing.T) {
	field := NewMemoryField()
	logger := &recordingLogger{}
	ctrl := newTestController(t, field, WithLocale("zz-ZZ"), WithDefaultLocale("en-GB"), WithLogger(logger))

	if ctrl.Currency() != "GBP" {
		t.Fatalf("Currency() = %q; want GBP from the default locale", ctrl.Currency())
	}

	field.SetText("100")
	if got := field.CurrentText(); got != "£1.00" {
		t.Fatalf("display = %q; want £1.00", got)
	}
	if ctrl.Result().Step != StepDefaultLocale {
		t.Fatalf("Result().Step = %s; want %s", ctrl.Result().Step, StepDefaultLocale)
	}
	if logger.count("warn") == 0 {
		t.Fatalf("expected a warning for the failed primary step")
	}
}

func TestControllerSetCurrency(t *testing.T) {
	field := NewMemoryField()
	logger := &recordingLogger{}
	ctrl := newTestController(t, field, WithLogger(logger))
	field.SetText("1234")

	if err := ctrl.SetCurrency("eur"); err != nil {
		t.Fatalf("SetCurrency(eur) error: %v", err)
	}
	if got := field.CurrentText(); got != "€12.34" {
		t.Fatalf("display = %q; want €12.34", got)
	}
	if field.Hint() != "EUR" {
		t.Fatalf("hint = %q; want EUR", field.Hint())
	}

	if err := ctrl.SetCurrencyLocale("CHF", "de-CH"); err != nil {
		t.Fatalf("SetCurrencyLocale error: %v", err)
	}
	if got := field.CurrentText(); got != "CHF 12.34" {
		t.Fatalf("display = %q; want CHF 12.34", got)
	}

	if err := ctrl.SetCurrency("QQQ"); err != nil {
		t.Fatalf("SetCurrency(QQQ) error: %v", err)
	}
	if ctrl.DecimalDigits() != 2 {
		t.Fatalf("DecimalDigits() = %d; want 2 kept for unknown currency", ctrl.DecimalDigits())
	}
	if ctrl.Result().Step == StepPrimary {
		t.Fatalf("unknown currency must not format on the primary step")
	}

	if err := ctrl.SetCurrency(""); err == nil {
		t.Fatalf("SetCurrency(\"\") error = nil; want error")
	}
}

func TestControllerHint(t *testing.T) {
	t.Run("host hint kept", func(t *testing.T) {
		field := NewMemoryField()
		field.SetHint("Amount")
		ctrl := newTestController(t, field)
		if err := ctrl.SetLocale("en-GB"); err != nil {
			t.Fatalf("SetLocale error: %v", err)
		}
		if field.Hint() != "Amount" {
			t.Fatalf("hint = %q; want Amount", field.Hint())
		}
	})

	t.Run("disabled", func(t *testing.T) {
		field := NewMemoryField()
		ctrl := newTestController(t, field, WithDefaultHint(false))
		if field.Hint() != "" {
			t.Fatalf("hint = %q; want empty", field.Hint())
		}
		ctrl.SetDefaultHintEnabled(true)
		if !ctrl.DefaultHintEnabled() || field.Hint() != "$" {
			t.Fatalf("hint = %q; want $ once enabled", field.Hint())
		}
	})
}

func TestControllerHeadless(t *testing.T) {
	ctrl := newTestController(t, nil, WithLocale("de-DE"))

	result := ctrl.Reformat("123456")
	if result.DisplayText != "1.234,56\u00a0€" || result.MinorUnitsValue != 123456 {
		t.Fatalf("Reformat() = %+v; want 1.234,56 € and 123456", result)
	}
	if result.CursorIndex != 8 {
		t.Fatalf("CursorIndex = %d; want 8", result.CursorIndex)
	}

	ctrl.OnTextChanged()
	if ctrl.RawValue() != 123456 {
		t.Fatalf("OnTextChanged without host must be a no-op")
	}

	if err := ctrl.Attach(nil); !errors.Is(err, ErrNoHost) {
		t.Fatalf("Attach(nil) error = %v; want ErrNoHost", err)
	}

	field := NewMemoryField()
	field.SetText("99")
	if err := ctrl.Attach(field); err != nil {
		t.Fatalf("Attach() error: %v", err)
	}
	if got := field.CurrentText(); got != "0,99\u00a0€" {
		t.Fatalf("display after attach = %q; want 0,99 €", got)
	}
}

func TestControllerAttachSameHostTwice(t *testing.T) {
	field := &countingField{MemoryField: NewMemoryField()}
	passes := 0
	hook := FormatHookFuncs{After: func(*FormatHookContext) { passes++ }}
	ctrl := newTestController(t, field, WithFormatHooks(hook))

	if err := ctrl.Attach(field); err != nil {
		t.Fatalf("Attach(same host) error: %v", err)
	}

	field.Insert("7")
	if passes != 1 {
		t.Fatalf("passes after one keystroke = %d; want 1", passes)
	}
	if field.writes != 1 {
		t.Fatalf("SetText calls = %d; want 1", field.writes)
	}
}

func TestControllerAttachReplacesHost(t *testing.T) {
	first := NewMemoryField()
	passes := 0
	hook := FormatHookFuncs{After: func(*FormatHookContext) { passes++ }}
	ctrl := newTestController(t, first, WithFormatHooks(hook))

	second := NewMemoryField()
	if err := ctrl.Attach(second); err != nil {
		t.Fatalf("Attach(second) error: %v", err)
	}
	if ctrl.Host() != second {
		t.Fatalf("Host() did not switch to the second field")
	}
	if got := second.Hint(); got != "$" {
		t.Fatalf("second.Hint() = %q; want $", got)
	}

	passes = 0
	first.Insert("5")
	if passes != 0 {
		t.Fatalf("passes after editing detached field = %d; want 0", passes)
	}

	second.Insert("5")
	if passes != 1 {
		t.Fatalf("passes after editing attached field = %d; want 1", passes)
	}
	if got := second.CurrentText(); got != "$0.05" {
		t.Fatalf("second display = %q; want $0.05", got)
	}
}

func TestControllerFormatHelpers(t *testing.T) {
	ctrl := newTestController(t, nil, WithLocale("en-US"))

	got, err := ctrl.FormatCurrency("$1,000.00")
	if err != nil || got != "$1,000.00" {
		t.Fatalf("FormatCurrency() = (%q, %v); want $1,000.00", got, err)
	}

	if _, err := ctrl.FormatCurrency("abc"); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("FormatCurrency(abc) error = %v; want ErrEmptyInput", err)
	}

	got, err = ctrl.FormatMinorUnits(5)
	if err != nil || got != "$0.05" {
		t.Fatalf("FormatMinorUnits(5) = (%q, %v); want $0.05", got, err)
	}

	if ctrl.RawValue() != 0 {
		t.Fatalf("format helpers must not change the canonical value")
	}
}

func TestControllerDefaultLocale(t *testing.T) {
	ctrl := newTestController(t, nil, WithLocale("zz-ZZ"), WithDefaultLocale("en-US"))
	if ctrl.DefaultLocale() != "en-US" {
		t.Fatalf("DefaultLocale() = %q; want en-US", ctrl.DefaultLocale())
	}

	ctrl.Reformat("100")
	ctrl.SetDefaultLocale("fr-FR")
	if ctrl.DefaultLocale() != "fr-FR" {
		t.Fatalf("DefaultLocale() = %q; want fr-FR", ctrl.DefaultLocale())
	}
	if got := ctrl.Result().DisplayText; got != "1,00\u00a0€" {
		t.Fatalf("display after SetDefaultLocale = %q; want 1,00 €", got)
	}
}

func TestControllerAmount(t *testing.T) {
	ctrl := newTestController(t, nil)
	ctrl.Reformat("1337")

	amount, err := ctrl.Amount()
	if err != nil {
		t.Fatalf("Amount() error: %v", err)
	}
	if amount.String() != "USD 13.37" {
		t.Fatalf("Amount() = %s; want USD 13.37", amount)
	}
	units, ok := amount.MinorUnits()
	if !ok || units != 1337 {
		t.Fatalf("MinorUnits() = (%d, %v); want 1337", units, ok)
	}
}
