package logger

import (
	"testing"

	"github.com/samvad-hq/docut-go/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestZapLoggerWritesStructuredField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLogger(zap.New(core))

	log.InfoObj("link created", "link", map[string]any{"id": "abc"})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "link created" {
		t.Fatalf("message = %q", entries[0].Message)
	}
	if _, ok := entries[0].ContextMap()["link"]; !ok {
		t.Fatalf("missing link field: %v", entries[0].ContextMap())
	}
}

func TestInitSetsPackageLogger(t *testing.T) {
	defer func() { S = nil }()

	log, err := Init(&config.Config{LogLevel: "debug"})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if log == nil || S == nil {
		t.Fatalf("expected loggers to be initialized")
	}
	if !S.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug level not enabled")
	}
}
