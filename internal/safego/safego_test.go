package safego

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type capture struct {
	mu    sync.Mutex
	names []string
	vals  []any
}

func (c *capture) handle(name string, r any, stack []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = append(c.names, name)
	c.vals = append(c.vals, r)
}

func (c *capture) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.names)
}

func withHandler(t *testing.T) *capture {
	t.Helper()
	c := &capture{}
	SetPanicHandler(c.handle)
	t.Cleanup(func() { SetPanicHandler(nil) })
	return c
}

func TestRunCallsFn(t *testing.T) {
	called := false
	Run("ok", func() { called = true })
	if !called {
		t.Fatalf("fn was not called")
	}
}

func TestRunReportsPanic(t *testing.T) {
	c := withHandler(t)
	Run("file-watch", func() { panic("oops") })

	if c.calls() != 1 || c.names[0] != "file-watch" || c.vals[0] != "oops" {
		t.Fatalf("unexpected reports: %v %v", c.names, c.vals)
	}
}

func TestEmptyNameIsLabelled(t *testing.T) {
	c := withHandler(t)
	Run("", func() { panic("x") })
	if c.calls() != 1 || c.names[0] != "goroutine" {
		t.Fatalf("unexpected names: %v", c.names)
	}
}

func TestPanickingHandlerIsContained(t *testing.T) {
	SetPanicHandler(func(string, any, []byte) { panic("handler") })
	t.Cleanup(func() { SetPanicHandler(nil) })
	Run("outer", func() { panic("inner") })
}

func TestRunErr(t *testing.T) {
	want := errors.New("plain")
	if err := RunErr("plain", func() error { return want }); err != want {
		t.Fatalf("RunErr() = %v, want %v", err, want)
	}

	withHandler(t)
	err := RunErr("source", func() error { panic("boom") })
	if err == nil || !strings.Contains(err.Error(), "source: panic: boom") {
		t.Fatalf("RunErr() = %v", err)
	}
}

func TestGoRecoversInBackground(t *testing.T) {
	c := withHandler(t)
	done := make(chan struct{})
	Go("bg", func() {
		defer close(done)
		panic("bg")
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("goroutine did not run")
	}
	deadline := time.Now().Add(time.Second)
	for c.calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if c.calls() != 1 {
		t.Fatalf("expected one report, got %d", c.calls())
	}
}
