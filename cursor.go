package currencyinput

import "unicode"

// PlaceCursor returns the rune index just after the last digit in display, or 0
// when display has no digits. Trailing symbols and separators are skipped.
func PlaceCursor(display string) int {
	cursor := 0
	index := 0
	for _, r := range display {
		index++
		if unicode.IsDigit(r) {
			cursor = index
		}
	}
	return cursor
}
