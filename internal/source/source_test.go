package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestStatic(t *testing.T) {
	var s Source = Static("breaking news")
	got, err := s.Load()
	if err != nil || got != "breaking news" {
		t.Fatalf("Load() = %q, %v", got, err)
	}
	if err := s.Run(context.Background(), func(string) { t.Fatalf("static source emitted") }); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestClean(t *testing.T) {
	if got := clean("a\r\nb\r\n\n"); got != "a\nb" {
		t.Fatalf("clean() = %q", got)
	}
}

type collector struct {
	mu  sync.Mutex
	got []string
}

func (c *collector) emit(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, s)
}

func (c *collector) waitFor(t *testing.T, want string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		for _, s := range c.got {
			if s == want {
				c.mu.Unlock()
				return
			}
		}
		c.mu.Unlock()
		time.Sleep(20 * time.Millisecond)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	t.Fatalf("timed out waiting for %q, got %q", want, c.got)
}

func TestFileReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.txt")
	if err := os.WriteFile(path, []byte("first\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	defer f.Close()

	got, err := f.Load()
	if err != nil || got != "first" {
		t.Fatalf("Load() = %q, %v", got, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var c collector
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx, c.emit) }()

	if err := os.WriteFile(path, []byte("second\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	c.waitFor(t, "second")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestFileIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "news.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var c collector
	go func() { _ = f.Run(ctx, c.emit) }()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("y"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}
	time.Sleep(300 * time.Millisecond)
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.got) != 0 {
		t.Fatalf("sibling change emitted %q", c.got)
	}
}

func TestFileCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.txt")
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestCommandKeepsTrailingLines(t *testing.T) {
	c := NewCommand("printf 'one\\ntwo\\nthree\\n'", t.TempDir(), 2)
	defer c.Close()

	var col collector
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Run(ctx, col.emit); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, _ := c.Load()
	if got != "two\nthree" {
		t.Fatalf("Load() = %q, want %q", got, "two\nthree")
	}
	col.mu.Lock()
	defer col.mu.Unlock()
	if len(col.got) != 3 || !strings.HasPrefix(col.got[0], "one") {
		t.Fatalf("emitted %q", col.got)
	}
}

func TestCommandCancel(t *testing.T) {
	c := NewCommand("while true; do echo tick; sleep 0.05; done", t.TempDir(), 1)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var col collector
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, col.emit) }()

	col.waitFor(t, "tick")
	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
