package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLocalesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the locales defined by the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := root.controller(cmd)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LOCALE\tCURRENCY\tSYMBOL\tDIGITS")
			for _, locale := range cfg.Catalog.Locales() {
				info, err := cfg.Catalog.LookupCurrency(locale)
				if err != nil {
					fmt.Fprintf(w, "%s\t-\t-\t-\n", locale)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					locale,
					info.CurrencyCode,
					cfg.Catalog.Symbol(locale, info.CurrencyCode),
					info.DefaultFractionDigits,
				)
			}
			return w.Flush()
		},
	}
}
