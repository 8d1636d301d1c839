package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"faramir/internal/config"
	"faramir/internal/services"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestConsoleHandlerFormatsComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := slog.New(newConsoleHandler(&buf, lvl, false))

	NewComponentLogger(logger, "batch").Info("frame tagged", String("file", "a b.jpg"), Int(FieldFrame, 3))

	line := buf.String()
	if !strings.Contains(line, "INFO batch: frame tagged") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, `file="a b.jpg"`) {
		t.Fatalf("expected quoted value in %q", line)
	}
	if !strings.Contains(line, "frame=3") {
		t.Fatalf("expected frame field in %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be rendered as prefix, got %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl, false))

	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info line should be filtered: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "WARN shown") {
		t.Fatalf("warn line missing: %q", buf.String())
	}
}

func TestConsoleHandlerClockPrefix(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	handler := newConsoleHandler(&buf, lvl, false)

	at := time.Date(2024, time.July, 14, 18, 30, 5, 250*int(time.Millisecond), time.Local)
	record := slog.NewRecord(at, slog.LevelInfo, "run started", 0)
	record.AddAttrs(slog.Time("started_at", at))
	if err := handler.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	line := buf.String()
	if !strings.HasPrefix(line, "18:30:05.250 INFO run started") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, `started_at="2024-07-14 18:30:05"`) {
		t.Fatalf("expected dated attribute in %q", line)
	}
}

func TestJSONHandlerRewritesKeys(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := slog.New(newJSONHandler(&buf, lvl, false))

	logger.Warn("shutter value rejected", String("field", "shutter"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json line: %v", err)
	}
	if payload["level"] != "warn" {
		t.Fatalf("expected lowercase level, got %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key in %v", payload)
	}
	if payload["field"] != "shutter" {
		t.Fatalf("expected field attribute, got %v", payload["field"])
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"

	logger, err := NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("batch started")

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "faramir.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "batch started") {
		t.Fatalf("log file missing entry: %q", string(data))
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelDebug)
	base := slog.New(newConsoleHandler(&buf, lvl, false))

	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithFrame(ctx, 2)
	ctx = services.WithStage(ctx, "write")

	WithContext(ctx, base).Info("tagging")

	line := buf.String()
	for _, want := range []string{"run_id=run-1", "frame=2", "stage=write"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
}

func TestWarnWithContextAddsEventType(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := slog.New(newConsoleHandler(&buf, lvl, false))

	WarnWithContext(logger, "unmatched rows", "alignment_unmatched", String(FieldImpact, "rows ignored"))

	if !strings.Contains(buf.String(), "event_type=alignment_unmatched") {
		t.Fatalf("expected event type: %q", buf.String())
	}
}

func TestErrorAttrOmitsNil(t *testing.T) {
	if args := Args(Error(nil)); len(args) != 0 {
		t.Fatalf("expected nil error to be dropped, got %v", args)
	}
}
