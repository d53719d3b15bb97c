package logging

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogFilePath(t *testing.T) {
	start := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	got := LogFilePath("/var/log/fieldsim", "fieldsim", start)
	want := filepath.Join("/var/log/fieldsim", "fieldsim.20260315_093000.log")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Errorf("parseLevel(%q): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestSlogManager_SetupWritesToFile(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "info", "")
	defer m.Close()

	m.Logger().Info("mission started", "name", "field 7")

	out := buf.String()
	if !strings.Contains(out, "mission started") {
		t.Errorf("expected message in file output, got %q", out)
	}
	if !strings.Contains(out, "field 7") {
		t.Errorf("expected attribute in file output, got %q", out)
	}
}

func TestSlogManager_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "warn", "")
	defer m.Close()

	m.Logger().Info("quiet")
	m.Logger().Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("expected info suppressed at warn level, got %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("expected warn logged, got %q", out)
	}
}

func TestSlogManager_LoggerBeforeSetup(t *testing.T) {
	m := NewSlogManager()
	if m.Logger() == nil {
		t.Fatal("expected a fallback logger before Setup")
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close before Setup failed: %v", err)
	}
}

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, nil),
	)

	slog.New(h).Info("both")

	if !strings.Contains(a.String(), "both") {
		t.Error("expected record in first handler")
	}
	if !strings.Contains(b.String(), "both") {
		t.Error("expected record in second handler")
	}
}

func TestMultiHandler_SkipsNilHandlers(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(nil, slog.NewTextHandler(&buf, nil), nil)

	slog.New(h).Info("survives")

	if !strings.Contains(buf.String(), "survives") {
		t.Error("expected record despite nil handlers")
	}
}

func TestMultiHandler_RespectsLevels(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(h)

	log.Debug("verbose")

	if !strings.Contains(debugBuf.String(), "verbose") {
		t.Error("expected debug handler to receive the record")
	}
	if errorBuf.Len() != 0 {
		t.Errorf("expected error handler to skip debug records, got %q", errorBuf.String())
	}
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(slog.NewTextHandler(&buf, nil))

	slog.New(h).With("mission", "field 3").Info("tick")

	out := buf.String()
	if !strings.Contains(out, "mission=") || !strings.Contains(out, "field 3") {
		t.Errorf("expected attached attribute, got %q", out)
	}
}
