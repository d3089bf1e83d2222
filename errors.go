package currencyinput

import "errors"

// ErrEmptyInput indicates that no digits were left after extraction.
var ErrEmptyInput = errors.New("currencyinput: empty input")

// ErrInputTooLong indicates the digit string exceeds MaxRawInputLength.
var ErrInputTooLong = errors.New("currencyinput: input too long")

// ErrUnsupportedLocaleOrCurrency is returned by catalog lookups and formatter steps
// that cannot resolve a locale or currency.
var ErrUnsupportedLocaleOrCurrency = errors.New("currencyinput: unsupported locale or currency")

// ErrFallbackExhausted is returned when every step of the fallback chain failed.
// It also matches ErrUnsupportedLocaleOrCurrency.
var ErrFallbackExhausted = errors.New("currencyinput: fallback chain exhausted")

// ErrInvalidDecimalDigits rejects decimal digit counts outside [MinDecimalDigits, MaxDecimalDigits].
var ErrInvalidDecimalDigits = errors.New("currencyinput: decimal digits out of range")

// ErrNoHost marks controller operations that need an attached host field.
var ErrNoHost = errors.New("currencyinput: no host field attached")

type exhaustedError struct {
	causes error
}

func (e *exhaustedError) Error() string {
	if e.causes == nil {
		return ErrFallbackExhausted.Error()
	}
	return ErrFallbackExhausted.Error() + ": " + e.causes.Error()
}

func (e *exhaustedError) Is(target error) bool {
	return target == ErrFallbackExhausted || target == ErrUnsupportedLocaleOrCurrency
}

func (e *exhaustedError) Unwrap() error {
	return e.causes
}
