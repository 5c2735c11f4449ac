package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: "debug", Format: "json"}, &buf); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer slog.SetDefault(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	Info(context.Background(), "session loaded", "trades", 3)
	op := StartOperation(context.Background(), "analyze", "days", 2)
	op.EndWithError(errors.New("boom"))

	out := buf.String()
	for _, want := range []string{`"msg":"session loaded"`, `"trades":3`, `"msg":"Operation started"`, `"error":"boom"`, `"operation":"analyze"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output does not contain %s:\n%s", want, out)
		}
	}
}

func TestLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: "WARN"}, &buf); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer slog.SetDefault(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	Info(context.Background(), "hidden")
	Warn(context.Background(), "shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("WARN level output:\n%s", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "warn": slog.LevelWarn, "Error": slog.LevelError, "": slog.LevelInfo}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
