package currencyinput

import "log/slog"

// Logger receives diagnostics from the formatter and controller.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// NopLogger discards every record.
var NopLogger Logger = nopLogger{}

func defaultLogger() Logger {
	return slog.Default()
}
