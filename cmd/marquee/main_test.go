//go:build !windows

package main

import (
	"errors"
	"io"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/marquee/internal/source"
	"github.com/andyrewlee/marquee/internal/supervisor"
)

func resetMouseFilterState() {
	lastMouseMotionEvent = time.Time{}
	lastMouseX = 0
	lastMouseY = 0
}

func TestMouseMotionSameCellThrottled(t *testing.T) {
	resetMouseFilterState()

	motion := tea.MouseMotionMsg{X: 10, Y: 10, Button: tea.MouseLeft}
	if mouseEventFilter(nil, motion) == nil {
		t.Fatalf("expected first motion event to pass through")
	}
	if mouseEventFilter(nil, motion) != nil {
		t.Fatalf("expected repeated motion at the same cell to be throttled")
	}
	moved := tea.MouseMotionMsg{X: 11, Y: 10, Button: tea.MouseLeft}
	if mouseEventFilter(nil, moved) == nil {
		t.Fatalf("expected motion to a new cell to pass through")
	}
}

func TestMouseFilterPassesClicks(t *testing.T) {
	resetMouseFilterState()

	click := tea.MouseClickMsg{X: 1, Y: 1, Button: tea.MouseLeft}
	if mouseEventFilter(nil, click) == nil {
		t.Fatalf("expected click to pass through")
	}
	if mouseEventFilter(nil, click) == nil {
		t.Fatalf("expected repeated click to pass through")
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{name: "defaults", args: nil, want: options{keep: 1}},
		{name: "positional text", args: []string{"hello", "world"}, want: options{text: "hello world", keep: 1}},
		{name: "command", args: []string{"--cmd", "date", "--keep", "3"}, want: options{command: "date", keep: 3, restart: supervisor.RestartOnError}},
		{name: "command always", args: []string{"--cmd", "date", "--restart", "always"}, want: options{command: "date", keep: 1, restart: supervisor.RestartAlways}},
		{name: "draggable file", args: []string{"--file", "notes.txt", "--draggable"}, want: options{file: "notes.txt", keep: 1, draggable: true, restart: supervisor.RestartOnError}},
		{name: "text ignores restart", args: []string{"--text", "hi", "--restart", "always"}, want: options{text: "hi", keep: 1}},
		{name: "bad restart", args: []string{"--restart", "sometimes"}, wantErr: true},
		{name: "conflicting sources", args: []string{"--text", "a", "--cmd", "date"}, wantErr: true},
		{name: "positional with source", args: []string{"--cmd", "date", "extra"}, wantErr: true},
		{name: "bad keep", args: []string{"--keep", "0"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOptions(tt.args, io.Discard)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOptions: %v", err)
			}
			if got != tt.want {
				t.Fatalf("options = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseOptionsVersion(t *testing.T) {
	if _, err := parseOptions([]string{"--version"}, io.Discard); !errors.Is(err, errVersion) {
		t.Fatalf("expected errVersion, got %v", err)
	}
}

func TestOptionsSource(t *testing.T) {
	src, name, err := options{text: "hi"}.source()
	if err != nil || name != "text" {
		t.Fatalf("source = %q, %v", name, err)
	}
	if s, ok := src.(source.Static); !ok || string(s) != "hi" {
		t.Fatalf("expected static source, got %T", src)
	}

	_, name, err = options{}.source()
	if err != nil || name != "demo" {
		t.Fatalf("default source = %q, %v", name, err)
	}

	_, name, _ = options{command: "date", keep: 1}.source()
	if name != "cmd" {
		t.Fatalf("command source name = %q", name)
	}
}

func TestShouldLaunchTUI(t *testing.T) {
	if !shouldLaunchTUI(true, true) {
		t.Fatalf("expected TUI for a terminal")
	}
	if shouldLaunchTUI(true, false) || shouldLaunchTUI(false, true) {
		t.Fatalf("expected no TUI without a terminal")
	}
}
