package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentBook, Output: &buf})

	l.Info("loaded", FieldKey, "nova_budgets")
	l.WithComponent(ComponentStorage).Warn("slow")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "component=book") || !strings.Contains(lines[0], "key=nova_budgets") {
		t.Errorf("first line = %q, want component=book and key=nova_budgets", lines[0])
	}
	if !strings.Contains(lines[1], "component=storage") || strings.Contains(lines[1], "component=book") {
		t.Errorf("second line = %q, want only component=storage", lines[1])
	}
}

func TestFailure(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf})
	l.Failure(context.Background(), "write failed", errors.New("disk full"), FieldKey, "nova_theme")
	got := buf.String()
	for _, want := range []string{"level=ERROR", `error="disk full"`, "key=nova_theme"} {
		if !strings.Contains(got, want) {
			t.Errorf("Failure output %q does not contain %q", got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelWarn, false},
		{"DEBUG", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
