package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	currencyinput "github.com/goliatone/go-currency-input"
	"github.com/goliatone/go-currency-input/internal/config"
)

type rootOptions struct {
	locale        string
	defaultLocale string
	currency      string
	decimalDigits int
	allowNegative bool
	cleared       string
	catalogPath   string
	profilePath   string
	verbose       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "currencyinput",
		Short:         "Locale aware currency input formatting",
		Long:          "Format currency amounts the way an incremental input field shows them, serve the formatter over HTTP or try it in a terminal field.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.locale, "locale", "l", "", "active locale, e.g. en-US")
	flags.StringVar(&opts.defaultLocale, "default-locale", "", "locale tried when the active one fails")
	flags.StringVarP(&opts.currency, "currency", "c", "", "ISO 4217 currency code, defaults to the locale's currency")
	flags.IntVarP(&opts.decimalDigits, "decimal-digits", "d", -1, "fractional digits, defaults to the currency's")
	flags.BoolVarP(&opts.allowNegative, "allow-negative", "n", false, "honor a '-' in the input")
	flags.StringVar(&opts.cleared, "cleared", "empty", "display for cleared input: empty or zero")
	flags.StringVar(&opts.catalogPath, "catalog", "", "YAML or JSON catalog merged over the embedded data")
	flags.StringVar(&opts.profilePath, "profile", "", "YAML or JSON profile file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log fallback diagnostics to stderr")

	cmd.AddCommand(
		newFormatCmd(opts),
		newLocalesCmd(opts),
		newServeCmd(opts),
		newDemoCmd(opts),
	)
	return cmd
}

// options converts the flags into currencyinput options. Flags override the
// profile file.
func (o *rootOptions) options(logger currencyinput.Logger) ([]currencyinput.Option, error) {
	cleared, err := currencyinput.ParseClearedDisplay(o.cleared)
	if err != nil {
		return nil, err
	}

	opts := o.formatting(config.FormattingConfig{DecimalDigits: -1}).Options()
	opts = append(opts,
		currencyinput.WithClearedDisplay(cleared),
		currencyinput.WithLogger(logger),
	)
	return opts, nil
}

// formatting layers the flags over base.
func (o *rootOptions) formatting(base config.FormattingConfig) config.FormattingConfig {
	if o.profilePath != "" {
		base.ProfilePath = o.profilePath
	}
	if o.catalogPath != "" {
		base.CatalogPath = o.catalogPath
	}
	if o.locale != "" {
		base.Locale = o.locale
	}
	if o.defaultLocale != "" {
		base.DefaultLocale = o.defaultLocale
	}
	if o.currency != "" {
		base.Currency = o.currency
	}
	if o.decimalDigits >= 0 {
		base.DecimalDigits = o.decimalDigits
	}
	if o.allowNegative {
		base.AllowNegative = true
	}
	return base
}

func (o *rootOptions) logger(cmd *cobra.Command) currencyinput.Logger {
	if !o.verbose {
		return currencyinput.NopLogger
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (o *rootOptions) controller(cmd *cobra.Command) (*currencyinput.Config, *currencyinput.Controller, error) {
	opts, err := o.options(o.logger(cmd))
	if err != nil {
		return nil, nil, err
	}
	cfg, err := currencyinput.NewConfig(opts...)
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := cfg.BuildController(nil)
	if err != nil {
		return nil, nil, err
	}
	return cfg, ctrl, nil
}
