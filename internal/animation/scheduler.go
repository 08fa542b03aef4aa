package animation

import "time"

// Handle identifies a scheduled frame or timer. The zero Handle is never
// issued.
type Handle uint64

// Scheduler is the host's per-frame callback primitive plus cancelable
// timers. All callbacks run on the host's event loop, one at a time.
type Scheduler interface {
	Now() time.Time
	RequestFrame(fn func(now time.Time)) Handle
	CancelFrame(h Handle)
	AfterFunc(d time.Duration, fn func()) Handle
	CancelTimer(h Handle)
}
