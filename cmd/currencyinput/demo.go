package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-currency-input/internal/tui"
)

func newDemoCmd(root *rootOptions) *cobra.Command {
	var logPath string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Type into a live currency field in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Log to a file so records do not interfere with the TUI.
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer logFile.Close()

			level := slog.LevelWarn
			if root.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))

			opts, err := root.options(logger)
			if err != nil {
				return err
			}
			app, err := tui.New(opts...)
			if err != nil {
				return err
			}
			return app.Run()
		},
	}

	cmd.Flags().StringVar(&logPath, "log-file", "currencyinput.log", "file receiving diagnostics while the demo runs")
	return cmd
}
