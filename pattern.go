package currencyinput

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	patternSymbol = '¤'
	patternNumber = '#'
)

// universalFormat renders the last fallback step without any catalog data.
var universalFormat = LocaleFormat{
	Currency:         UniversalCurrency,
	DecimalSeparator: ".",
	GroupSeparator:   ",",
	Grouping:         3,
	PositivePattern:  "¤#",
	NegativePattern:  "-¤#",
}

const universalSymbol = "$"

func validatePattern(pattern string) error {
	if strings.Count(pattern, string(patternNumber)) != 1 {
		return fmt.Errorf("pattern %q must contain exactly one %q", pattern, patternNumber)
	}
	if strings.Count(pattern, string(patternSymbol)) > 1 {
		return fmt.Errorf("pattern %q has more than one %q", pattern, patternSymbol)
	}
	return nil
}

// renderAmount formats value with exactly decimalDigits fractional digits using
// the separators and patterns of format.
func renderAmount(value float64, decimalDigits int, format LocaleFormat, symbol string) (string, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", errors.New("amount is not a finite number")
	}
	if err := validateDecimalDigits(decimalDigits); err != nil {
		return "", err
	}

	negative := math.Signbit(value)
	digits := strconv.FormatFloat(math.Abs(value), 'f', decimalDigits, 64)

	integer, fraction := digits, ""
	if idx := strings.IndexByte(digits, '.'); idx >= 0 {
		integer, fraction = digits[:idx], digits[idx+1:]
	}

	var number strings.Builder
	number.WriteString(groupDigits(integer, format.GroupSeparator, format.Grouping, format.SecondaryGrouping))
	if fraction != "" {
		number.WriteString(format.DecimalSeparator)
		number.WriteString(fraction)
	}

	pattern := format.PositivePattern
	if negative {
		pattern = format.NegativePattern
		if pattern == "" {
			pattern = string(SignMarker) + format.PositivePattern
		}
	}

	return applyPattern(pattern, symbol, number.String()), nil
}

func applyPattern(pattern, symbol, number string) string {
	var builder strings.Builder
	builder.Grow(len(pattern) + len(symbol) + len(number))
	for _, r := range pattern {
		switch r {
		case patternSymbol:
			builder.WriteString(symbol)
		case patternNumber:
			builder.WriteString(number)
		default:
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// groupDigits inserts separator into integer. The rightmost group has size
// primary; when secondary is set the remaining groups use it (1,00,00,000).
func groupDigits(integer, separator string, primary, secondary int) string {
	if separator == "" || primary <= 0 || len(integer) <= primary {
		return integer
	}
	if secondary <= 0 {
		secondary = primary
	}

	groups := []string{integer[len(integer)-primary:]}
	rest := integer[:len(integer)-primary]
	for len(rest) > secondary {
		groups = append(groups, rest[len(rest)-secondary:])
		rest = rest[:len(rest)-secondary]
	}
	if rest != "" {
		groups = append(groups, rest)
	}

	var builder strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		builder.WriteString(groups[i])
		if i > 0 {
			builder.WriteString(separator)
		}
	}
	return builder.String()
}
