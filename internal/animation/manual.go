package animation

import (
	"sort"
	"time"
)

// DefaultFrameInterval is the frame spacing of a ManualScheduler (~60 fps).
const DefaultFrameInterval = 16 * time.Millisecond

type frameRequest struct {
	h  Handle
	fn func(time.Time)
}

type timerRequest struct {
	h   Handle
	due time.Time
	fn  func()
}

// ManualScheduler is a fake clock and frame driver. Time only moves when
// Advance or Frame is called, which makes engine behavior deterministic in
// tests and in the harness.
type ManualScheduler struct {
	FrameInterval time.Duration

	now    time.Time
	next   Handle
	frames []frameRequest
	timers []timerRequest
	ran    int

	// cancelled holds frames cancelled while a frame batch is running.
	cancelled map[Handle]bool
}

// NewManualScheduler starts the fake clock at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{FrameInterval: DefaultFrameInterval, now: start}
}

func (m *ManualScheduler) Now() time.Time { return m.now }

func (m *ManualScheduler) handle() Handle {
	m.next++
	return m.next
}

func (m *ManualScheduler) RequestFrame(fn func(time.Time)) Handle {
	h := m.handle()
	m.frames = append(m.frames, frameRequest{h: h, fn: fn})
	return h
}

func (m *ManualScheduler) CancelFrame(h Handle) {
	if m.cancelled != nil {
		m.cancelled[h] = true
	}
	for i, f := range m.frames {
		if f.h == h {
			m.frames = append(m.frames[:i], m.frames[i+1:]...)
			return
		}
	}
}

func (m *ManualScheduler) AfterFunc(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	h := m.handle()
	m.timers = append(m.timers, timerRequest{h: h, due: m.now.Add(d), fn: fn})
	return h
}

func (m *ManualScheduler) CancelTimer(h Handle) {
	for i, t := range m.timers {
		if t.h == h {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

// PendingFrames is the number of frame callbacks waiting for the next frame.
func (m *ManualScheduler) PendingFrames() int { return len(m.frames) }

// PendingTimers is the number of timers that have not fired.
func (m *ManualScheduler) PendingTimers() int { return len(m.timers) }

// FramesRun counts frame callbacks executed so far.
func (m *ManualScheduler) FramesRun() int { return m.ran }

// Frame moves the clock by one frame interval, fires due timers and then
// runs the frame callbacks that were pending.
func (m *ManualScheduler) Frame() {
	step := m.FrameInterval
	if step <= 0 {
		step = DefaultFrameInterval
	}
	m.now = m.now.Add(step)
	m.fireTimers()

	frames := m.frames
	m.frames = nil
	m.cancelled = make(map[Handle]bool)
	for _, f := range frames {
		if m.cancelled[f.h] {
			continue
		}
		m.ran++
		f.fn(m.now)
	}
	m.cancelled = nil
}

// Advance runs frames until d has elapsed.
func (m *ManualScheduler) Advance(d time.Duration) {
	end := m.now.Add(d)
	for m.now.Before(end) {
		m.Frame()
	}
}

// RunUntil runs frames until cond holds or limit elapses. It reports whether
// cond was met.
func (m *ManualScheduler) RunUntil(cond func() bool, limit time.Duration) bool {
	end := m.now.Add(limit)
	for !cond() {
		if !m.now.Before(end) {
			return false
		}
		m.Frame()
	}
	return true
}

func (m *ManualScheduler) fireTimers() {
	for {
		sort.SliceStable(m.timers, func(i, j int) bool {
			return m.timers[i].due.Before(m.timers[j].due)
		})
		if len(m.timers) == 0 || m.timers[0].due.After(m.now) {
			return
		}
		t := m.timers[0]
		m.timers = m.timers[1:]
		t.fn()
	}
}
