package logging

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
)

func setupLogger(t *testing.T, level Level) (string, func()) {
	t.Helper()

	if err := Initialize(t.TempDir(), level); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	logPath := GetLogPath()
	if logPath == "" {
		t.Fatalf("GetLogPath returned empty path")
	}
	if !strings.Contains(logPath, "marquee-") {
		t.Fatalf("unexpected log file name: %s", logPath)
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() { _ = Close() })
	}
	t.Cleanup(cleanup)

	return logPath, cleanup
}

func TestInitializeAndLogWrites(t *testing.T) {
	logPath, cleanup := setupLogger(t, LevelInfo)

	Info("engine phase %s", "forward")
	cleanup()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "INFO: engine phase forward") {
		t.Fatalf("expected log line to contain message, got: %q", string(data))
	}
}

func TestSetEnabledDisablesLogging(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(&buf, LevelDebug)
	t.Cleanup(func() { _ = Close() })

	SetEnabled(false)
	Info("should not write")

	if buf.Len() != 0 {
		t.Fatalf("expected no log output when disabled, got: %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(&buf, LevelWarn)
	t.Cleanup(func() { _ = Close() })

	Info("info message")
	Warn("warn message")

	content := buf.String()
	if strings.Contains(content, "INFO: info message") {
		t.Fatalf("did not expect info log at warn level: %q", content)
	}
	if !strings.Contains(content, "WARN: warn message") {
		t.Fatalf("expected warn log, got: %q", content)
	}
}

func TestLoggingWithoutInitializeIsSilent(t *testing.T) {
	_ = Close()
	Error("nobody listens")
	if GetLogPath() != "" {
		t.Fatal("expected empty log path without a logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
