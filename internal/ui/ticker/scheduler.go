package ticker

import (
	"sort"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/marquee/internal/animation"
	"github.com/andyrewlee/marquee/internal/perf"
	"github.com/andyrewlee/marquee/internal/ui/common"
)

// FrameInterval is the spacing of animation frames (~60 fps).
const FrameInterval = 16 * time.Millisecond

// frameMsg drives the pending frame callbacks of one ticker.
type frameMsg struct {
	owner int
	at    time.Time
}

// timerMsg fires one delayed callback.
type timerMsg struct {
	owner int
	h     animation.Handle
}

type timer struct {
	due time.Time
	fn  func()
}

// Scheduler runs engine callbacks on the Bubble Tea event loop. Requests
// are queued as commands and picked up by the model with Flush, so every
// callback runs inside Update.
type Scheduler struct {
	owner    int
	interval time.Duration
	now      func() time.Time

	next       animation.Handle
	frames     map[animation.Handle]func(time.Time)
	timers     map[animation.Handle]timer
	frameArmed bool
	cmds       []tea.Cmd
}

// NewScheduler creates a scheduler whose messages carry owner.
func NewScheduler(owner int) *Scheduler {
	return &Scheduler{
		owner:    owner,
		interval: FrameInterval,
		now:      time.Now,
		frames:   make(map[animation.Handle]func(time.Time)),
		timers:   make(map[animation.Handle]timer),
	}
}

var _ animation.Scheduler = (*Scheduler)(nil)

func (s *Scheduler) Now() time.Time { return s.now() }

func (s *Scheduler) handle() animation.Handle {
	s.next++
	return s.next
}

func (s *Scheduler) RequestFrame(fn func(time.Time)) animation.Handle {
	h := s.handle()
	s.frames[h] = fn
	if !s.frameArmed {
		s.frameArmed = true
		owner := s.owner
		s.cmds = append(s.cmds, common.SafeTick(s.interval, func(t time.Time) tea.Msg {
			return frameMsg{owner: owner, at: t}
		}))
	}
	return h
}

func (s *Scheduler) CancelFrame(h animation.Handle) { delete(s.frames, h) }

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) animation.Handle {
	if d < 0 {
		d = 0
	}
	h := s.handle()
	s.timers[h] = timer{due: s.now().Add(d), fn: fn}
	owner := s.owner
	s.cmds = append(s.cmds, common.SafeTick(d, func(time.Time) tea.Msg {
		return timerMsg{owner: owner, h: h}
	}))
	return h
}

// CancelTimer forgets the callback; the tick still arrives and is ignored.
func (s *Scheduler) CancelTimer(h animation.Handle) { delete(s.timers, h) }

// Pending reports queued frame and timer callbacks.
func (s *Scheduler) Pending() (frames, timers int) { return len(s.frames), len(s.timers) }

// Handle runs the callbacks addressed by msg and reports whether msg
// belonged to this scheduler.
func (s *Scheduler) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.owner != s.owner {
			return false
		}
		s.frameArmed = false
		frames := s.frames
		s.frames = make(map[animation.Handle]func(time.Time))
		if len(frames) == 0 {
			return true
		}
		done := perf.Time(perf.FrameCallbacks)
		for _, fn := range frames {
			fn(msg.at)
		}
		done()
		perf.Count(perf.Frames, 1)
		return true
	case timerMsg:
		if msg.owner != s.owner {
			return false
		}
		if t, ok := s.timers[msg.h]; ok {
			delete(s.timers, msg.h)
			t.fn()
		}
		return true
	}
	return false
}

// Advance runs the timers due at now in due order, then one frame at now.
// Headless drivers use it instead of the tick messages; queued commands are
// dropped.
func (s *Scheduler) Advance(now time.Time) {
	for {
		due := make([]animation.Handle, 0, len(s.timers))
		for h, t := range s.timers {
			if !t.due.After(now) {
				due = append(due, h)
			}
		}
		if len(due) == 0 {
			break
		}
		sort.Slice(due, func(i, j int) bool {
			a, b := s.timers[due[i]], s.timers[due[j]]
			if !a.due.Equal(b.due) {
				return a.due.Before(b.due)
			}
			return due[i] < due[j]
		})
		t := s.timers[due[0]]
		delete(s.timers, due[0])
		t.fn()
	}
	s.Handle(frameMsg{owner: s.owner, at: now})
	s.cmds = nil
}

// Flush returns the commands queued since the last call.
func (s *Scheduler) Flush() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}
