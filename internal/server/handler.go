package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	currencyinput "github.com/goliatone/go-currency-input"
)

// Handler serves the formatting API on top of a base configuration.
type Handler struct {
	base          *currencyinput.Config
	logger        *slog.Logger
	tracer        trace.Tracer
	maxKeystrokes int
}

// NewHandler creates a Handler. Request profiles are resolved against base.
func NewHandler(base *currencyinput.Config, logger *slog.Logger, tracer trace.Tracer, maxKeystrokes int) *Handler {
	return &Handler{
		base:          base,
		logger:        logger,
		tracer:        tracer,
		maxKeystrokes: maxKeystrokes,
	}
}

// Health reports liveness.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Locales lists the catalog with each locale's default currency.
func (h *Handler) Locales(c echo.Context) error {
	catalog := h.base.Catalog

	resp := LocalesResponse{DefaultLocale: h.base.DefaultLocaleID}
	for _, locale := range catalog.Locales() {
		info, err := catalog.LookupCurrency(locale)
		if err != nil {
			h.logger.DebugContext(c.Request().Context(), "locale without currency", "locale", locale, "error", err)
			continue
		}
		resp.Locales = append(resp.Locales, LocaleItem{
			Locale:        locale,
			Currency:      info.CurrencyCode,
			Symbol:        info.Symbol,
			DecimalDigits: info.DefaultFractionDigits,
		})
	}

	return c.JSON(http.StatusOK, resp)
}

// Format renders minor units or a digit string with the requested profile.
func (h *Handler) Format(c echo.Context) error {
	var req FormatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if (req.MinorUnits == nil) == (req.Input == "") {
		return echo.NewHTTPError(http.StatusBadRequest, "exactly one of minor_units or input is required")
	}

	ctx, span := h.tracer.Start(c.Request().Context(), "currencyinput.Format")
	defer span.End()

	cfg, err := h.resolve(req.ProfileRequest)
	if err != nil {
		return recordSpanError(span, err)
	}
	profile := cfg.Profile()
	span.SetAttributes(profileAttributes(profile)...)

	text := req.Input
	if req.MinorUnits != nil {
		text = strconv.FormatInt(*req.MinorUnits, 10)
	}

	digits, negative := currencyinput.ExtractDigits(text, profile.AllowNegative)
	value, minor, err := currencyinput.PlaceDenomination(digits, negative, profile.DecimalDigits)
	if err != nil {
		return recordSpanError(span, err)
	}

	display, step, err := cfg.BuildFormatter().FormatStep(value, profile)
	if err != nil {
		return recordSpanError(span, err)
	}
	span.SetAttributes(
		attribute.String("currency.step", string(step)),
		attribute.Int64("currency.minor_units", minor),
	)

	h.logger.DebugContext(ctx, "formatted amount", "locale", profile.LocaleID, "currency", profile.CurrencyCode, "step", step)

	return c.JSON(http.StatusOK, FormatResponse{
		Display:       display,
		Cursor:        currencyinput.PlaceCursor(display),
		MinorUnits:    minor,
		Locale:        profile.LocaleID,
		Currency:      profile.CurrencyCode,
		DecimalDigits: profile.DecimalDigits,
		Step:          string(step),
	})
}

// Keystrokes replays edits through a controller bound to an in memory field.
func (h *Handler) Keystrokes(c echo.Context) error {
	var req KeystrokesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	keys := []rune(req.Keys)
	total := len(req.Inputs) + len(keys)
	if total == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "inputs or keys are required")
	}
	if total > h.maxKeystrokes {
		return echo.NewHTTPError(http.StatusBadRequest, "too many keystrokes")
	}

	_, span := h.tracer.Start(c.Request().Context(), "currencyinput.Keystrokes")
	defer span.End()

	hook := currencyinput.FormatHookFuncs{
		After: func(ctx *currencyinput.FormatHookContext) {
			span.AddEvent("reformat", trace.WithAttributes(
				attribute.String("input", ctx.Input),
				attribute.String("display", ctx.Result.DisplayText),
				attribute.Bool("rolled_back", ctx.Result.RolledBack),
			))
		},
	}

	cfg, err := h.resolve(req.ProfileRequest, currencyinput.WithFormatHooks(hook))
	if err != nil {
		return recordSpanError(span, err)
	}
	span.SetAttributes(profileAttributes(cfg.Profile())...)

	field := currencyinput.NewMemoryField()
	ctrl, err := cfg.BuildController(field)
	if err != nil {
		return recordSpanError(span, err)
	}

	steps := make([]KeystrokeStep, 0, total)
	record := func(input string) {
		result := ctrl.Result()
		steps = append(steps, KeystrokeStep{
			Input:      input,
			Display:    field.CurrentText(),
			Cursor:     field.Selection(),
			MinorUnits: ctrl.RawValue(),
			RolledBack: result.RolledBack,
			Step:       string(result.Step),
		})
	}

	for _, input := range req.Inputs {
		field.SetText(input)
		record(input)
	}
	for _, key := range keys {
		if key == '\b' {
			field.Backspace()
		} else {
			field.Insert(string(key))
		}
		record(string(key))
	}

	resp := KeystrokesResponse{
		Steps:    steps,
		Display:  field.CurrentText(),
		RawValue: ctrl.RawValue(),
		Hint:     field.Hint(),
	}
	if amount, err := ctrl.Amount(); err == nil {
		resp.Amount = amount.String()
	}

	return c.JSON(http.StatusOK, resp)
}

// resolve layers the request profile over the base configuration. Changing
// locale or currency drops the base decimal digits so the new currency's
// default applies.
func (h *Handler) resolve(req ProfileRequest, extra ...currencyinput.Option) (*currencyinput.Config, error) {
	opts := []currencyinput.Option{
		currencyinput.WithCatalog(h.base.Catalog),
		currencyinput.WithLogger(h.logger),
		currencyinput.WithDefaultLocale(h.base.DefaultLocaleID),
		currencyinput.WithAllowNegativeValues(h.base.AllowNegative),
		currencyinput.WithClearedDisplay(h.base.ClearedDisplay),
		currencyinput.WithDefaultHint(!h.base.DisableDefaultHint),
	}

	locale := h.base.LocaleID
	if req.Locale != "" {
		locale = req.Locale
	}
	opts = append(opts, currencyinput.WithLocale(locale))

	switch {
	case req.Currency != "":
		opts = append(opts, currencyinput.WithCurrency(req.Currency))
	case req.Locale == "":
		opts = append(opts, currencyinput.WithCurrency(h.base.CurrencyCode))
	}

	switch {
	case req.DecimalDigits != nil:
		opts = append(opts, currencyinput.WithDecimalDigits(*req.DecimalDigits))
	case req.Locale == "" && req.Currency == "":
		opts = append(opts, currencyinput.WithDecimalDigits(h.base.DecimalDigits()))
	}

	if req.DefaultLocale != "" {
		opts = append(opts, currencyinput.WithDefaultLocale(req.DefaultLocale))
	}
	if req.AllowNegative != nil {
		opts = append(opts, currencyinput.WithAllowNegativeValues(*req.AllowNegative))
	}

	return currencyinput.NewConfig(append(opts, extra...)...)
}

func profileAttributes(profile currencyinput.CurrencyProfile) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("currency.locale", profile.LocaleID),
		attribute.String("currency.code", profile.CurrencyCode),
		attribute.Int("currency.decimal_digits", profile.DecimalDigits),
		attribute.Bool("currency.allow_negative", profile.AllowNegative),
	}
}

func recordSpanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
