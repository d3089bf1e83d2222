package currencyinput

import (
	"fmt"
	"strconv"
	"strings"
)

type phase int

const (
	phaseIdle phase = iota
	phaseReformatting
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseReformatting:
		return "reformatting"
	default:
		return "unknown"
	}
}

// Controller turns every edit of a host field into a formatted currency
// display while tracking the canonical value in minor units.
//
// The controller is either idle or reformatting. Host text changes received
// while reformatting are the echo of the controller's own SetText call and are
// absorbed; every change received while idle is processed. A Controller is not
// safe for concurrent use; it runs on the host's event callback.
type Controller struct {
	host      HostField
	formatter *Formatter
	logger    Logger
	hooks     []FormatHook

	profile CurrencyProfile
	state   InputState
	raw     int64
	phase   phase
	last    FormatResult

	cleared     ClearedDisplay
	defaultHint bool
	ownedHint   string

	// attachment counts Attach calls; listeners from earlier hosts go quiet.
	attachment int
}

type update struct {
	result FormatResult
	state  InputState
	raw    int64
	err    error
}

func newController(cfg *Config, host HostField) (*Controller, error) {
	c := &Controller{
		formatter:   cfg.BuildFormatter(),
		logger:      cfg.Logger,
		hooks:       filterHooks(cfg.Hooks),
		profile:     cfg.Profile(),
		cleared:     cfg.ClearedDisplay,
		defaultHint: !cfg.DisableDefaultHint,
	}
	if host != nil {
		if err := c.Attach(host); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Attach binds the controller to host, subscribes to its changes when host is
// a ChangeNotifier, sets the default hint and formats any text already present.
// Attaching the current host again is a no-op.
func (c *Controller) Attach(host HostField) error {
	if host == nil {
		return ErrNoHost
	}
	if c.host == host {
		return nil
	}
	c.host = host
	c.ownedHint = ""
	c.attachment++
	if notifier, ok := host.(ChangeNotifier); ok {
		attachment := c.attachment
		notifier.OnChange(func() {
			if c.attachment == attachment {
				c.OnTextChanged()
			}
		})
	}

	c.configureHint(c.formatter.Symbol(c.profile.LocaleID, c.profile.CurrencyCode))

	switch {
	case host.CurrentText() != "":
		c.OnTextChanged()
	case c.cleared == ClearedDisplayZero:
		c.Refresh()
	}
	return nil
}

// Host returns the attached host field, nil for a headless controller.
func (c *Controller) Host() HostField {
	return c.host
}

// OnTextChanged is the host's text change callback.
func (c *Controller) OnTextChanged() {
	if c.host == nil {
		return
	}
	c.apply(c.host.CurrentText())
}

// Reformat runs one pass over text without touching the host and returns its
// result. The canonical value and last good display are updated.
func (c *Controller) Reformat(text string) FormatResult {
	if c.phase == phaseReformatting {
		return c.last
	}
	c.phase = phaseReformatting
	defer func() { c.phase = phaseIdle }()

	return c.pass(text).result
}

func (c *Controller) apply(text string) update {
	if c.phase == phaseReformatting {
		return update{result: c.last, state: c.state, raw: c.raw}
	}
	c.phase = phaseReformatting
	defer func() { c.phase = phaseIdle }()

	u := c.pass(text)
	if c.host != nil {
		if c.host.CurrentText() != u.result.DisplayText {
			c.host.SetText(u.result.DisplayText)
		}
		c.host.SetSelection(u.result.CursorIndex)
	}
	return u
}

func (c *Controller) pass(text string) update {
	ctx := &FormatHookContext{Input: text, Profile: c.profile}
	for _, hook := range c.hooks {
		hook.BeforeFormat(ctx)
	}

	u := c.transform(ctx.Input)
	c.state = u.state
	c.raw = u.raw
	c.last = u.result

	ctx.Result = u.result
	ctx.Error = u.err
	for _, hook := range c.hooks {
		hook.AfterFormat(ctx)
	}
	return u
}

func (c *Controller) transform(text string) update {
	digits, negative := ExtractDigits(text, c.profile.AllowNegative)
	if digits == "" {
		if negative {
			return c.pendingSign()
		}
		return c.clearedDisplay()
	}

	value, minor, err := PlaceDenomination(digits, negative, c.profile.DecimalDigits)
	if err != nil {
		return c.rollback(err)
	}

	display, step, err := c.formatter.FormatStep(value, c.profile)
	if err != nil {
		return c.rollback(err)
	}

	return update{
		result: FormatResult{
			DisplayText:     display,
			CursorIndex:     PlaceCursor(display),
			MinorUnitsValue: minor,
			Step:            step,
		},
		state: InputState{RawDigits: digits, IsNegative: negative, LastGoodDisplay: display},
		raw:   minor,
	}
}

func (c *Controller) rollback(err error) update {
	display := c.state.LastGoodDisplay
	c.logger.Debug("currencyinput: restoring last good display", "display", display, "error", err)
	return update{
		result: FormatResult{
			DisplayText:     display,
			CursorIndex:     PlaceCursor(display),
			MinorUnitsValue: c.raw,
			RolledBack:      true,
		},
		state: c.state,
		raw:   c.raw,
		err:   err,
	}
}

func (c *Controller) pendingSign() update {
	display := string(SignMarker)
	return update{
		result: FormatResult{DisplayText: display, CursorIndex: PlaceCursor(display)},
		state:  InputState{IsNegative: true, LastGoodDisplay: display},
	}
}

func (c *Controller) clearedDisplay() update {
	var (
		display string
		step    FallbackStep
	)
	if c.cleared == ClearedDisplayZero {
		zero, zeroStep, err := c.formatter.FormatStep(0, c.profile)
		if err == nil {
			display, step = zero, zeroStep
		}
	}
	return update{
		result: FormatResult{DisplayText: display, CursorIndex: PlaceCursor(display), Step: step},
		state:  InputState{LastGoodDisplay: display},
	}
}

// RawValue returns the canonical value in minor units, e.g. 1337 for $13.37.
func (c *Controller) RawValue() int64 {
	return c.raw
}

// SetValue displays units, a value in minor units. The sign is dropped when
// negative values are not allowed.
func (c *Controller) SetValue(units int64) error {
	return c.apply(strconv.FormatInt(units, 10)).err
}

// Result returns the outcome of the latest pass.
func (c *Controller) Result() FormatResult {
	return c.last
}

// State returns a copy of the input state.
func (c *Controller) State() InputState {
	return c.state
}

// Profile returns a copy of the active profile.
func (c *Controller) Profile() CurrencyProfile {
	return c.profile
}

// Formatter returns the formatter used by the controller.
func (c *Controller) Formatter() *Formatter {
	return c.formatter
}

// Refresh renders the current value again, after a configuration change.
func (c *Controller) Refresh() {
	text := c.state.RawDigits
	if c.state.IsNegative {
		text = string(SignMarker) + text
	}
	c.apply(text)
}

// FormatCurrency formats val with the active profile. Non digit characters are
// stripped first; an empty or too long digit string is an error.
func (c *Controller) FormatCurrency(val string) (string, error) {
	digits, negative := ExtractDigits(val, c.profile.AllowNegative)
	value, _, err := PlaceDenomination(digits, negative, c.profile.DecimalDigits)
	if err != nil {
		return "", err
	}
	return c.formatter.Format(value, c.profile)
}

// FormatMinorUnits formats units with the active profile.
func (c *Controller) FormatMinorUnits(units int64) (string, error) {
	return c.FormatCurrency(strconv.FormatInt(units, 10))
}

// Locale returns the active locale.
func (c *Controller) Locale() string {
	return c.profile.LocaleID
}

// SetLocale switches locale, adopts its currency and that currency's default
// decimal digits, then refreshes the display.
func (c *Controller) SetLocale(locale string) error {
	canonical := canonicalLocale(locale)
	if canonical == "" {
		return fmt.Errorf("currencyinput: empty locale")
	}

	profile := c.profile
	profile.LocaleID = canonical
	info, _, err := c.formatter.ResolveCurrency(profile)
	if err != nil {
		return fmt.Errorf("currencyinput: resolve currency for %q: %w", canonical, err)
	}
	profile.CurrencyCode = info.CurrencyCode
	profile.DecimalDigits = info.DefaultFractionDigits

	c.profile = profile
	c.configureHint(info.CurrencyCode)
	c.Refresh()
	return nil
}

// Currency returns the active ISO 4217 currency code.
func (c *Controller) Currency() string {
	return c.profile.CurrencyCode
}

// SetCurrency switches currency in the active locale.
func (c *Controller) SetCurrency(code string) error {
	return c.SetCurrencyLocale(code, "")
}

// SetCurrencyLocale switches currency and, when locale is not empty, locale.
// Decimal digits reset to the currency's default; unknown codes keep the
// current digits and are left to the formatter's fallback chain.
func (c *Controller) SetCurrencyLocale(code, locale string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fmt.Errorf("currencyinput: empty currency code")
	}

	profile := c.profile
	profile.CurrencyCode = code
	if canonical := canonicalLocale(locale); canonical != "" {
		profile.LocaleID = canonical
	}

	digits, err := DefaultFractionDigits(code)
	if err != nil {
		c.logger.Warn("currencyinput: unknown currency, keeping decimal digits",
			"currency", code,
			"decimal_digits", profile.DecimalDigits,
			"error", err,
		)
		digits = profile.DecimalDigits
	}
	profile.DecimalDigits = digits

	c.profile = profile
	c.configureHint(code)
	c.Refresh()
	return nil
}

// DecimalDigits returns the number of fractional digits in use.
func (c *Controller) DecimalDigits() int {
	return c.profile.DecimalDigits
}

// SetDecimalDigits overrides the fractional digits until the next locale or
// currency change. Values outside [0,340] fail with ErrInvalidDecimalDigits.
func (c *Controller) SetDecimalDigits(digits int) error {
	if err := validateDecimalDigits(digits); err != nil {
		return err
	}
	c.profile.DecimalDigits = digits
	c.Refresh()
	return nil
}

// NegativeValuesAllowed reports whether a sign marker is honored.
func (c *Controller) NegativeValuesAllowed() bool {
	return c.profile.AllowNegative
}

// SetAllowNegativeValues toggles negative input and refreshes the display.
func (c *Controller) SetAllowNegativeValues(allow bool) {
	c.profile.AllowNegative = allow
	c.Refresh()
}

// DefaultLocale returns the locale used when the active one cannot be formatted.
func (c *Controller) DefaultLocale() string {
	return c.profile.DefaultLocaleID
}

// SetDefaultLocale replaces the default locale and refreshes the display.
func (c *Controller) SetDefaultLocale(locale string) {
	c.profile.DefaultLocaleID = canonicalLocale(locale)
	c.Refresh()
}

// DefaultHintEnabled reports whether the controller manages the host hint.
func (c *Controller) DefaultHintEnabled() bool {
	return c.defaultHint
}

// SetDefaultHintEnabled toggles the default hint. Enabling it fills an empty
// host hint with the currency symbol.
func (c *Controller) SetDefaultHintEnabled(enabled bool) {
	c.defaultHint = enabled
	if enabled {
		c.configureHint(c.formatter.Symbol(c.profile.LocaleID, c.profile.CurrencyCode))
	}
}

// configureHint sets hint on the host unless the host carries a hint the
// controller did not set.
func (c *Controller) configureHint(hint string) {
	if c.host == nil || !c.defaultHint {
		return
	}
	if current := c.host.Hint(); current != "" && current != c.ownedHint {
		return
	}
	c.host.SetHint(hint)
	c.ownedHint = hint
}
