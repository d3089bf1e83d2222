package currencyinput

import (
	"fmt"

	"github.com/govalues/money"
)

// AmountFromMinorUnits converts units scaled by decimalDigits into a typed
// amount of currency code. Scales beyond what money.Amount supports fail.
func AmountFromMinorUnits(code string, units int64, decimalDigits int) (money.Amount, error) {
	if err := validateDecimalDigits(decimalDigits); err != nil {
		return money.Amount{}, err
	}
	amount, err := money.NewAmount(code, units, decimalDigits)
	if err != nil {
		return money.Amount{}, fmt.Errorf("currencyinput: amount %d/10^%d %s: %w", units, decimalDigits, code, err)
	}
	return amount, nil
}

// Amount returns the canonical value as a money.Amount in the active currency.
func (c *Controller) Amount() (money.Amount, error) {
	return AmountFromMinorUnits(c.profile.CurrencyCode, c.raw, c.profile.DecimalDigits)
}
