package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/goliatone/go-currency-input/internal/config"
	"github.com/goliatone/go-currency-input/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the formatter over HTTP",
		Long:  "Serve the formatter over HTTP. Settings come from the environment and .env files; formatting flags override them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFiles...)
			if err != nil {
				return err
			}
			cfg.Formatting = root.formatting(cfg.Formatting)

			level := slog.LevelInfo
			if root.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
				With("service", cfg.Telemetry.ServiceName, "environment", cfg.Environment)

			srv, err := server.New(cfg, logger, newTracer(cfg.Telemetry))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")
	return cmd
}

// newTracer returns the global tracer, which exports through whatever provider
// the process registered, or a no-op tracer when telemetry is disabled.
func newTracer(cfg config.TelemetryConfig) trace.Tracer {
	if !cfg.Enabled {
		return noop.NewTracerProvider().Tracer(cfg.ServiceName)
	}
	return otel.Tracer(cfg.ServiceName)
}
