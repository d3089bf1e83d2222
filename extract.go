package currencyinput

import "strings"

// SignMarker is the character that flags a negative amount in host text.
const SignMarker = '-'

// ExtractDigits strips input down to its ASCII digits and reports whether the
// text carries a negative sign. A leading '(' counts as a sign marker so that
// accounting style displays keep their sign while being edited.
//
// Sign markers are dropped silently when allowNegative is false. A sign with no
// digits returns ("", true): the user is mid way through typing a negative amount.
func ExtractDigits(input string, allowNegative bool) (string, bool) {
	negative := false
	if allowNegative {
		negative = strings.ContainsRune(input, SignMarker) ||
			strings.HasPrefix(strings.TrimSpace(input), "(")
	}

	var builder strings.Builder
	builder.Grow(len(input))
	for i := 0; i < len(input); i++ {
		if c := input[i]; c >= '0' && c <= '9' {
			builder.WriteByte(c)
		}
	}
	return builder.String(), negative
}
