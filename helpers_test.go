package currencyinput

import (
	"fmt"
	"testing"
)

type logRecord struct {
	level string
	msg   string
	args  []any
}

type recordingLogger struct {
	records []logRecord
}

func (l *recordingLogger) Debug(msg string, args ...any) {
	l.records = append(l.records, logRecord{level: "debug", msg: msg, args: args})
}

func (l *recordingLogger) Warn(msg string, args ...any) {
	l.records = append(l.records, logRecord{level: "warn", msg: msg, args: args})
}

func (l *recordingLogger) count(level string) int {
	total := 0
	for _, record := range l.records {
		if record.level == level {
			total++
		}
	}
	return total
}

// attr returns the value logged for key in record.
func (r logRecord) attr(key string) string {
	for i := 0; i+1 < len(r.args); i += 2 {
		if r.args[i] == key {
			return fmt.Sprint(r.args[i+1])
		}
	}
	return ""
}

func mustDefaultCatalog(t *testing.T) *StaticCatalog {
	t.Helper()
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() error: %v", err)
	}
	return catalog
}

func newTestController(t *testing.T, host HostField, opts ...Option) *Controller {
	t.Helper()
	opts = append([]Option{WithLogger(NopLogger)}, opts...)
	cfg, err := NewConfig(opts...)
	if err != nil {
		t.Fatalf("NewConfig() error: %v", err)
	}
	ctrl, err := cfg.BuildController(host)
	if err != nil {
		t.Fatalf("BuildController() error: %v", err)
	}
	return ctrl
}

func typeKeys(field *MemoryField, keys ...string) {
	for _, key := range keys {
		field.Insert(key)
	}
}
