package currencyinput

import (
	"errors"
	"strings"
)

// FallbackStep names a position in the formatter's fallback chain.
type FallbackStep string

const (
	// StepPrimary uses the profile locale and currency.
	StepPrimary FallbackStep = "primary"
	// StepDefaultLocale uses the profile default locale with its own currency.
	StepDefaultLocale FallbackStep = "default_locale"
	// StepUniversal renders US dollars with US conventions.
	StepUniversal FallbackStep = "universal"
)

type fallbackAttempt struct {
	step     FallbackStep
	locale   string
	currency string
}

// fallbackChain returns the ordered attempts for profile. Attempts repeating an
// earlier locale/currency pair are dropped, except the universal step, which
// always ends the chain since it renders without catalog data.
func fallbackChain(profile CurrencyProfile) []fallbackAttempt {
	candidates := []fallbackAttempt{
		{step: StepPrimary, locale: profile.LocaleID, currency: profile.CurrencyCode},
		{step: StepDefaultLocale, locale: profile.DefaultLocaleID},
		{step: StepUniversal, locale: UniversalLocale, currency: UniversalCurrency},
	}

	chain := make([]fallbackAttempt, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, attempt := range candidates {
		attempt.locale = canonicalLocale(attempt.locale)
		attempt.currency = strings.ToUpper(strings.TrimSpace(attempt.currency))
		if attempt.locale == "" {
			continue
		}
		key := attempt.locale + "|" + attempt.currency
		if _, exists := seen[key]; exists && attempt.step != StepUniversal {
			continue
		}
		seen[key] = struct{}{}
		chain = append(chain, attempt)
	}
	return chain
}

// firstSuccess runs fn over chain until one attempt succeeds. Failed attempts
// are logged as warnings; the combined causes are returned when all fail.
func firstSuccess(chain []fallbackAttempt, logger Logger, fn func(fallbackAttempt) error) (FallbackStep, error) {
	var causes []error
	for _, attempt := range chain {
		err := fn(attempt)
		if err == nil {
			return attempt.step, nil
		}
		logger.Warn("currencyinput: fallback step failed",
			"step", string(attempt.step),
			"locale", attempt.locale,
			"currency", attempt.currency,
			"error", err,
		)
		causes = append(causes, err)
	}
	return "", &exhaustedError{causes: errors.Join(causes...)}
}
