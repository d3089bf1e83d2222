package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel/trace"

	currencyinput "github.com/goliatone/go-currency-input"
	"github.com/goliatone/go-currency-input/internal/config"
)

const defaultBodyLimit = "64K"

// Server exposes the formatter over HTTP.
type Server struct {
	echo    *echo.Echo
	cfg     *config.Config
	handler *Handler
	logger  *slog.Logger
}

// New builds the base configuration from cfg.Formatting and registers routes.
func New(cfg *config.Config, logger *slog.Logger, tracer trace.Tracer) (*Server, error) {
	base, err := currencyinput.NewConfig(append(cfg.Formatting.Options(), currencyinput.WithLogger(logger))...)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		_ = handleError(c, err, logger)
	}

	bodyLimit := cfg.Server.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(TracingMiddleware(tracer))
	e.Use(LoggingMiddleware(logger))
	e.Use(ErrorHandlerMiddleware(logger))

	handler := NewHandler(base, logger, tracer, cfg.Server.MaxKeystrokes)

	e.GET("/healthz", handler.Health)
	v1 := e.Group("/v1")
	v1.GET("/locales", handler.Locales)
	v1.POST("/format", handler.Format)
	v1.POST("/keystrokes", handler.Keystrokes)

	return &Server{
		echo:    e,
		cfg:     cfg,
		handler: handler,
		logger:  logger,
	}, nil
}

// Echo returns the underlying echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.echo.Server.ReadTimeout = s.cfg.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.cfg.Server.WriteTimeout
	s.echo.Server.IdleTimeout = s.cfg.Server.IdleTimeout

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "address", s.cfg.Server.Address())
		if err := s.echo.Start(s.cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down server")
	return s.echo.Shutdown(shutdownCtx)
}
