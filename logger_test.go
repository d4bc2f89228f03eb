package main

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"", "console", "json", "JSON"} {
		logger, err := newLogger("debug", format)
		if err != nil {
			t.Fatalf("format %q: %v", format, err)
		}
		if !logger.Core().Enabled(zapcore.DebugLevel) {
			t.Fatalf("format %q: debug level not enabled", format)
		}
	}

	logger, err := newLogger("WARN", "console")
	if err != nil {
		t.Fatalf("newLogger returned error: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info must be disabled at warn level")
	}
}

func TestNewLoggerErrors(t *testing.T) {
	if _, err := newLogger("chatty", "console"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := newLogger("info", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
