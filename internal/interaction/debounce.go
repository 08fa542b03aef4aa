package interaction

import (
	"time"

	"github.com/andyrewlee/marquee/internal/animation"
)

// ResizeDebounce is the quiet interval before a resize triggers
// re-measurement.
const ResizeDebounce = 200 * time.Millisecond

// Debouncer runs fn once after calls to Trigger stop for the interval.
type Debouncer struct {
	sched    animation.Scheduler
	interval time.Duration
	fn       func()
	h        animation.Handle
}

// NewDebouncer creates a debouncer on s.
func NewDebouncer(s animation.Scheduler, interval time.Duration, fn func()) *Debouncer {
	return &Debouncer{sched: s, interval: interval, fn: fn}
}

// Trigger restarts the quiet interval.
func (d *Debouncer) Trigger() {
	d.Cancel()
	d.h = d.sched.AfterFunc(d.interval, func() {
		d.h = 0
		if d.fn != nil {
			d.fn()
		}
	})
}

// Cancel drops a pending call.
func (d *Debouncer) Cancel() {
	if d.h != 0 {
		d.sched.CancelTimer(d.h)
		d.h = 0
	}
}

// Pending reports whether a call is waiting.
func (d *Debouncer) Pending() bool { return d.h != 0 }
