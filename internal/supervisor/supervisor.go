// Package supervisor keeps background content sources running, restarting
// them with exponential backoff according to a policy.
package supervisor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/andyrewlee/marquee/internal/logging"
	"github.com/andyrewlee/marquee/internal/safego"
)

// RestartPolicy controls when a worker is restarted after it returns.
type RestartPolicy int

const (
	RestartNever RestartPolicy = iota
	RestartOnError
	RestartAlways
)

func (p RestartPolicy) String() string {
	switch p {
	case RestartOnError:
		return "on-error"
	case RestartAlways:
		return "always"
	default:
		return "never"
	}
}

// ParseRestartPolicy accepts never, on-error or always.
func ParseRestartPolicy(s string) (RestartPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "never", "":
		return RestartNever, nil
	case "on-error", "onerror":
		return RestartOnError, nil
	case "always":
		return RestartAlways, nil
	}
	return RestartNever, fmt.Errorf("unknown restart policy %q", s)
}

type options struct {
	policy      RestartPolicy
	maxRestarts int
	backoff     time.Duration
	maxBackoff  time.Duration
	onError     func(name string, err error)
	wait        func(ctx context.Context, d time.Duration) bool
}

// Option configures one worker.
type Option func(*options)

func WithRestartPolicy(policy RestartPolicy) Option {
	return func(o *options) { o.policy = policy }
}

// WithMaxRestarts limits restarts; zero means unlimited.
func WithMaxRestarts(n int) Option {
	return func(o *options) { o.maxRestarts = n }
}

// WithBackoff sets the first delay between restarts. It doubles up to the
// cap set by WithMaxBackoff.
func WithBackoff(d time.Duration) Option {
	return func(o *options) { o.backoff = d }
}

func WithMaxBackoff(d time.Duration) Option {
	return func(o *options) { o.maxBackoff = d }
}

// WithErrorHandler overrides the supervisor-wide error handler.
func WithErrorHandler(fn func(name string, err error)) Option {
	return func(o *options) { o.onError = fn }
}

// Supervisor owns a set of workers bound to one context.
type Supervisor struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	onError func(name string, err error)
}

func New(parent context.Context) *Supervisor {
	ctx, cancel := context.WithCancel(parent)
	return &Supervisor{ctx: ctx, cancel: cancel}
}

func (s *Supervisor) Context() context.Context {
	return s.ctx
}

// SetErrorHandler registers the handler called whenever a worker fails.
// Call it before Start.
func (s *Supervisor) SetErrorHandler(handler func(name string, err error)) {
	if s == nil {
		return
	}
	s.onError = handler
}

// Stop cancels every worker and waits for them to return.
func (s *Supervisor) Stop() {
	if s == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
}

// Start runs fn in its own goroutine until it returns without needing a
// restart, the restart budget is spent, or the supervisor stops. Panics in
// fn count as errors.
func (s *Supervisor) Start(name string, fn func(context.Context) error, opts ...Option) {
	if s == nil || fn == nil {
		return
	}
	cfg := options{
		policy:     RestartOnError,
		backoff:    500 * time.Millisecond,
		maxBackoff: 10 * time.Second,
		onError:    s.onError,
		wait:       sleepCtx,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxBackoff < cfg.backoff {
		cfg.maxBackoff = cfg.backoff
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(name, fn, cfg)
	}()
}

func (s *Supervisor) run(name string, fn func(context.Context) error, cfg options) {
	backoff := cfg.backoff
	for restarts := 0; ; restarts++ {
		err := safego.RunErr(name, func() error { return fn(s.ctx) })
		if s.ctx.Err() != nil {
			return
		}
		if err != nil {
			logging.Warn("supervisor: %s failed: %v", name, err)
			if cfg.onError != nil {
				cfg.onError(name, err)
			}
		}
		if !shouldRestart(err, cfg.policy) {
			return
		}
		if cfg.maxRestarts > 0 && restarts >= cfg.maxRestarts {
			logging.Error("supervisor: %s exceeded max restarts (%d)", name, cfg.maxRestarts)
			return
		}
		if !cfg.wait(s.ctx, backoff) {
			return
		}
		logging.Debug("supervisor: restarting %s (%d)", name, restarts+1)
		backoff = min(backoff*2, cfg.maxBackoff)
	}
}

func shouldRestart(err error, policy RestartPolicy) bool {
	switch policy {
	case RestartAlways:
		return true
	case RestartOnError:
		return err != nil
	default:
		return false
	}
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
