package currencyinput

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PlaceDenomination interprets digits as an amount in minor units with
// decimalDigits fractional digits. It returns the value in major units, used
// only for display, and the canonical signed minor units value.
func PlaceDenomination(digits string, negative bool, decimalDigits int) (float64, int64, error) {
	if digits == "" {
		return 0, 0, ErrEmptyInput
	}
	if len(digits) > MaxRawInputLength {
		return 0, 0, fmt.Errorf("%w: %d digits, max %d", ErrInputTooLong, len(digits), MaxRawInputLength)
	}
	if err := validateDecimalDigits(decimalDigits); err != nil {
		return 0, 0, err
	}

	minor, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("currencyinput: parse digits %q: %w", digits, err)
	}

	if len(digits) <= decimalDigits {
		digits = strings.Repeat("0", decimalDigits+1-len(digits)) + digits
	}

	prepared := digits
	if decimalDigits > 0 {
		split := len(digits) - decimalDigits
		prepared = digits[:split] + "." + digits[split:]
	}

	// Extreme scales underflow to zero; the display is coarse there, minor stays exact.
	value, err := strconv.ParseFloat(prepared, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, 0, fmt.Errorf("currencyinput: parse amount %q: %w", prepared, err)
	}

	if negative {
		return -value, -minor, nil
	}
	return value, minor, nil
}
