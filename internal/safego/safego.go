// Package safego runs background work so that a panic is logged and
// reported instead of taking the terminal down with it.
package safego

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"github.com/andyrewlee/marquee/internal/logging"
)

// PanicHandler is told about every recovered panic.
type PanicHandler func(name string, recovered any, stack []byte)

var handler atomic.Pointer[PanicHandler]

// SetPanicHandler installs h process-wide; nil removes it.
func SetPanicHandler(h PanicHandler) {
	if h == nil {
		handler.Store(nil)
		return
	}
	handler.Store(&h)
}

func recovered(name string, r any) {
	if name == "" {
		name = "goroutine"
	}
	stack := debug.Stack()
	logging.Error("panic in %s: %v\n%s", name, r, stack)

	h := handler.Load()
	if h == nil {
		return
	}
	// A panicking handler must not escape the recovery.
	defer func() { _ = recover() }()
	(*h)(name, r, stack)
}

// Run calls fn, recovering a panic. Fatal runtime errors such as concurrent
// map writes still crash.
func Run(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			recovered(name, r)
		}
	}()
	fn()
}

// RunErr calls fn and returns a recovered panic as an error.
func RunErr(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			recovered(name, r)
			err = fmt.Errorf("%s: panic: %v", name, r)
		}
	}()
	return fn()
}

// Go is Run on a new goroutine.
func Go(name string, fn func()) {
	go Run(name, fn)
}
