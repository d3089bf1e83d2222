package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	currencyinput "github.com/goliatone/go-currency-input"
)

// TracingMiddleware starts a server span per request.
func TracingMiddleware(tracer trace.Tracer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			propagator := otel.GetTextMapPropagator()
			ctx = propagator.Extract(ctx, propagation.HeaderCarrier(c.Request().Header))

			spanName := c.Request().Method + " " + c.Path()
			ctx, span := tracer.Start(ctx, spanName,
				trace.WithSpanKind(trace.SpanKindServer),
			)
			defer span.End()

			span.SetAttributes(
				attribute.String("http.method", c.Request().Method),
				attribute.String("http.route", c.Path()),
				attribute.String("http.user_agent", c.Request().UserAgent()),
			)

			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)

			span.SetAttributes(attribute.Int("http.status_code", c.Response().Status))
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}

			return err
		}
	}
}

// LoggingMiddleware records the start and outcome of every request.
func LoggingMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			logger.DebugContext(req.Context(), "HTTP request started",
				"method", req.Method,
				"path", req.URL.Path,
				"remote_addr", req.RemoteAddr,
				"user_agent", req.UserAgent(),
			)

			err := next(c)

			attrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status_code", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			}
			if err != nil {
				logger.ErrorContext(req.Context(), "HTTP request failed", append(attrs, "error", err)...)
			} else {
				logger.InfoContext(req.Context(), "HTTP request completed", attrs...)
			}
			return err
		}
	}
}

// ErrorHandlerMiddleware renders errors returned by handlers as ErrorResponse.
func ErrorHandlerMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}
			return handleError(c, err, logger)
		}
	}
}

type errorMapping struct {
	target error
	status int
	code   string
}

// errorMappings is ordered; ErrFallbackExhausted also matches
// ErrUnsupportedLocaleOrCurrency and must come first.
var errorMappings = []errorMapping{
	{target: currencyinput.ErrEmptyInput, status: http.StatusBadRequest, code: "empty_input"},
	{target: currencyinput.ErrInputTooLong, status: http.StatusUnprocessableEntity, code: "input_too_long"},
	{target: currencyinput.ErrInvalidDecimalDigits, status: http.StatusBadRequest, code: "invalid_decimal_digits"},
	{target: currencyinput.ErrFallbackExhausted, status: http.StatusUnprocessableEntity, code: "fallback_exhausted"},
	{target: currencyinput.ErrUnsupportedLocaleOrCurrency, status: http.StatusBadRequest, code: "unsupported_locale_or_currency"},
}

func handleError(c echo.Context, err error, logger *slog.Logger) error {
	ctx := c.Request().Context()

	for _, mapping := range errorMappings {
		if errors.Is(err, mapping.target) {
			logger.WarnContext(ctx, "request rejected", "code", mapping.code, "error", err)
			return c.JSON(mapping.status, ErrorResponse{
				Error:   mapping.code,
				Message: err.Error(),
			})
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.WarnContext(ctx, "http error", "status_code", httpErr.Code, "message", httpErr.Message)
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	logger.ErrorContext(ctx, "internal server error", "path", c.Request().URL.Path, "error", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_server_error",
		Message: "An unexpected error occurred",
	})
}
