package currencyinput

import (
	"strings"

	"golang.org/x/text/language"
)

// normalizeLocale replaces underscores with hyphens and trims whitespace.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// canonicalLocale returns the BCP 47 form of locale ("en_us" -> "en-US"), or the
// normalized input when it does not parse.
func canonicalLocale(locale string) string {
	normalized := normalizeLocale(locale)
	if normalized == "" {
		return ""
	}
	tag, err := language.Parse(normalized)
	if err != nil {
		return normalized
	}
	return tag.String()
}

func localeParentTag(locale string) string {
	if locale == "" {
		return ""
	}

	tag, err := language.Parse(locale)
	if err == nil {
		parent := tag.Parent()
		if parent == language.Und {
			return ""
		}
		value := parent.String()
		if value == "" || value == "und" {
			return ""
		}
		return value
	}

	if idx := strings.LastIndex(locale, "-"); idx > 0 {
		return locale[:idx]
	}

	return ""
}

// localeCandidates returns locale followed by its parents, closest first.
func localeCandidates(locale string) []string {
	canonical := canonicalLocale(locale)
	if canonical == "" {
		return nil
	}

	chain := []string{canonical}
	seen := map[string]struct{}{canonical: {}}

	for current := localeParentTag(canonical); current != ""; current = localeParentTag(current) {
		if _, exists := seen[current]; exists {
			break
		}
		seen[current] = struct{}{}
		chain = append(chain, current)
	}

	return chain
}

// regionFromLocale returns the region of locale, inferring it for bare languages
// ("fr" -> FR). ok is false when no region can be determined.
func regionFromLocale(locale string) (language.Region, bool) {
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return language.Region{}, false
	}
	region, confidence := tag.Region()
	if confidence == language.No {
		return language.Region{}, false
	}
	return region, true
}
