package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"garbage", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	l.WithComponent("ledger").Info("store ready")
	if got := buf.String(); !strings.Contains(got, "component=ledger") {
		t.Fatalf("record missing component attribute: %q", got)
	}

	buf.Reset()
	l.Info("plain")
	if got := buf.String(); strings.Contains(got, "component=") {
		t.Fatalf("WithComponent mutated the parent logger: %q", got)
	}
}
