package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newFormatCmd(root *rootOptions) *cobra.Command {
	var (
		minor   bool
		showRaw bool
	)

	cmd := &cobra.Command{
		Use:   "format INPUT...",
		Short: "Format raw input as the field would display it",
		Example: `  currencyinput format 1337
  currencyinput format --locale de-DE 123456
  currencyinput format --minor --currency JPY 5000`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctrl, err := root.controller(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				var display string
				if minor {
					units, err := strconv.ParseInt(arg, 10, 64)
					if err != nil {
						return fmt.Errorf("parse minor units %q: %w", arg, err)
					}
					display, err = ctrl.FormatMinorUnits(units)
					if err != nil {
						return err
					}
				} else {
					display, err = ctrl.FormatCurrency(arg)
					if err != nil {
						return err
					}
				}

				if !showRaw {
					fmt.Fprintln(out, display)
					continue
				}
				result := ctrl.Reformat(arg)
				fmt.Fprintf(out, "%s\t%d\n", display, result.MinorUnitsValue)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&minor, "minor", false, "treat inputs as signed integers in minor units")
	cmd.Flags().BoolVar(&showRaw, "raw", false, "print the canonical minor units next to each display")
	return cmd
}
