package animation

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/andyrewlee/marquee/internal/logging"
)

// Config binds an engine to a target and a measured geometry for one
// configuration epoch.
type Config struct {
	Params
	Geometry      Geometry
	StartPosition float64
	// Target receives every offset change. A nil target leaves the engine
	// uninitialised and every method a no-op.
	Target Positioner
	// OnIterationsEnd fires when the configured iteration count is reached.
	OnIterationsEnd func()
}

// Engine is the imperative shell around the pure transitions in state.go.
// It owns the offset and phase of one ticker and talks to the host only
// through its Scheduler.
//
// Engine is not safe for concurrent use; it is driven from a single event
// loop.
type Engine struct {
	sched Scheduler
	cfg   Config
	st    State

	inited   bool
	frame    Handle
	prevTime time.Time
	timers   map[Handle]pendingTimer

	// backThen runs when an in-flight Back reaches zero. It survives a
	// pause so that resuming the return keeps its arrival behaviour.
	backThen func()
	// held are the delays frozen by a hidden host, with the time left on
	// each.
	held []heldTimer

	onAnimationEnd func()
}

type pendingTimer struct {
	due time.Time
	fn  func()
}

type heldTimer struct {
	left time.Duration
	fn   func()
}

// NewEngine creates an engine that schedules on s.
func NewEngine(s Scheduler) *Engine {
	return &Engine{sched: s, timers: make(map[Handle]pendingTimer)}
}

// Init replaces the configuration, cancels everything in flight and resets
// the iteration counter. With zero iterations nothing is ever armed.
func (e *Engine) Init(cfg Config) {
	e.clearTimers()
	e.stopAnimation()

	if math.IsNaN(cfg.Speed) || cfg.Speed < 0 {
		cfg.Speed = 0
	}
	if math.IsNaN(cfg.SpeedBack) || cfg.SpeedBack < 0 {
		cfg.SpeedBack = 0
	}
	e.cfg = cfg
	e.st = State{Offset: cfg.StartPosition}
	e.onAnimationEnd = nil
	e.backThen = nil
	e.inited = false

	if cfg.Iterations == 0 || cfg.Target == nil {
		logging.Debug("animation: init skipped (iterations=%s target=%t)", cfg.Iterations, cfg.Target != nil)
		return
	}

	e.publish()
	e.inited = true
	logging.Debug("animation: init direction=%s speed=%g back=%g iterations=%s infinite=%t",
		cfg.Direction, cfg.Speed, cfg.SpeedBack, cfg.Iterations, cfg.Infinite)
}

// Play starts the frame loop, or resumes it from the current phase. The
// configured Delay applies only when starting from Idle. With continueAfter
// an in-flight Back becomes a Restart, so playback carries on after the
// return instead of stopping at zero.
func (e *Engine) Play(onEnd func(), continueAfter bool) {
	if !e.inited {
		return
	}
	if onEnd != nil {
		e.onAnimationEnd = onEnd
	}
	e.st.SuspendedByVisibility = false
	e.clearTimers()

	if continueAfter && e.st.Phase == PhaseBack {
		e.st.Phase = PhaseRestart
		e.st.Immediate = false
		e.backThen = nil
	}
	if e.st.Dragging {
		return
	}

	delay := time.Duration(0)
	if e.st.Phase == PhaseIdle {
		delay = e.cfg.Delay
	}
	e.after(delay, func() {
		phase := e.st.Phase
		if phase == PhaseIdle || phase == PhaseDragging {
			phase = PhaseForward
		}
		if phase == PhaseBack && e.backThen != nil {
			e.animate(PhaseBack, e.arriveBack)
			return
		}
		e.animate(phase, e.fireAnimationEnd)
	})
}

// Pause cancels the frame loop and any delayed start but keeps the offset
// and phase, so Play resumes seamlessly. An explicit pause always clears
// the visibility suspension.
func (e *Engine) Pause() {
	if !e.inited {
		return
	}
	e.st.SuspendedByVisibility = false
	e.clearTimers()
	e.stopAnimation()
}

// BackToStartPosition returns the offset to zero at return speed. On
// arrival it stops and calls onEnd when willPause is set, otherwise it
// re-arms Forward after Delay. immediate makes the return look instant.
func (e *Engine) BackToStartPosition(willPause bool, onEnd func(), immediate bool) {
	if !e.inited {
		return
	}
	e.onAnimationEnd = onEnd
	e.clearTimers()
	e.st.Immediate = immediate

	e.backThen = func() {
		if !willPause {
			e.after(e.cfg.Delay, func() { e.animate(PhaseForward, nil) })
			return
		}
		e.fireAnimationEnd()
	}
	e.animate(PhaseBack, e.arriveBack)
}

func (e *Engine) arriveBack() {
	then := e.backThen
	e.backThen = nil
	if then != nil {
		then()
	}
}

// SetDragging hands the offset to pointer input. Starting a drag cancels
// the frame loop and every pending timer before returning.
func (e *Engine) SetDragging(drag bool) {
	if drag {
		e.clearTimers()
		e.stopAnimation()
		e.backThen = nil
		e.st.Phase = PhaseDragging
	}
	e.st.Dragging = drag
}

// IsDragging reports whether pointer input owns the offset.
func (e *Engine) IsDragging() bool { return e.st.Dragging }

// ApplyDrag moves the offset by a pointer delta along the active axis.
func (e *Engine) ApplyDrag(delta float64) {
	if !e.inited {
		return
	}
	e.st, _ = Drag(e.st, e.cfg.Params, e.cfg.Geometry, delta)
	e.publish()
}

// AlignPosition is the per-frame correction step. It reports whether the
// frame loop should keep going.
func (e *Engine) AlignPosition(phase Phase, onEnd func()) bool {
	if !e.inited {
		return false
	}

	st, outcome := Align(e.st, e.cfg.Params, e.cfg.Geometry, phase)
	e.st = st
	e.publish()

	switch outcome {
	case Continue:
		return true
	case ScheduleRestart:
		e.stopAnimation()
		logging.Debug("animation: bound reached at %.2f, restart in %s", e.st.Offset, e.cfg.DelayBack)
		e.after(e.cfg.DelayBack, func() { e.animate(PhaseRestart, onEnd) })
	case ScheduleForward:
		e.stopAnimation()
		e.after(e.cfg.Delay, func() { e.animate(PhaseForward, onEnd) })
	case Finished:
		e.stopAnimation()
		logging.Debug("animation: %d iterations done", e.st.Iteration)
		if onEnd != nil {
			onEnd()
		}
		if e.cfg.OnIterationsEnd != nil {
			e.cfg.OnIterationsEnd()
		}
	case Returned:
		e.stopAnimation()
		if onEnd != nil {
			onEnd()
		}
	}
	return false
}

// ToggleByVisibility freezes a live loop when the host becomes hidden and
// resumes it when the host is visible again. Only a suspension caused by
// visibility is resumed; a deliberate pause stays paused.
func (e *Engine) ToggleByVisibility(visible bool) {
	if !e.inited {
		return
	}
	if !visible {
		if e.Animating() {
			e.st.SuspendedByVisibility = true
			if e.frame == 0 {
				e.holdTimers()
			} else {
				e.clearTimers()
			}
			e.stopAnimation()
			logging.Debug("animation: suspended while hidden at %.2f", e.st.Offset)
		}
		return
	}
	if !e.st.SuspendedByVisibility {
		return
	}
	if len(e.held) > 0 {
		// A delay that was counting down carries on with the time it had
		// left when the host was hidden.
		held := e.held
		e.held = nil
		e.st.SuspendedByVisibility = false
		for _, t := range held {
			e.after(t.left, t.fn)
		}
		return
	}
	// Play restarts the frame clock, so the hidden interval is not
	// applied as elapsed time.
	e.Play(nil, false)
}

// Counter returns the completed traversal count.
func (e *Engine) Counter() int { return e.st.Iteration }

// SetCounter overrides the traversal count, e.g. to replay on hover.
func (e *Engine) SetCounter(n int) {
	if n < 0 {
		n = 0
	}
	e.st.Iteration = n
}

// Destroy cancels every timer and the frame loop. It is safe to call more
// than once.
func (e *Engine) Destroy() {
	e.clearTimers()
	e.stopAnimation()
	e.backThen = nil
}

// Offset returns the current offset along the active axis.
func (e *Engine) Offset() float64 { return e.st.Offset }

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.st.Phase }

// State returns a copy of the state record.
func (e *Engine) State() State { return e.st }

// Initialized reports whether the last Init armed the engine.
func (e *Engine) Initialized() bool { return e.inited }

// Animating reports whether a frame or delayed motion is pending.
func (e *Engine) Animating() bool { return e.frame != 0 || len(e.timers) > 0 }

// Position returns the cell shift produced by the positioning strategy.
func (e *Engine) Position() (x, y int) {
	if e.cfg.Target == nil {
		return 0, 0
	}
	return e.cfg.Target.Cells()
}

func (e *Engine) animate(phase Phase, onEnd func()) {
	e.stopAnimation()
	if e.st.Phase != phase {
		logging.Debug("animation: %s -> %s at %.2f", e.st.Phase, phase, e.st.Offset)
	}
	e.st.Phase = phase
	e.st.StartPos = e.st.Offset
	e.prevTime = time.Time{}

	var tick func(now time.Time)
	tick = func(now time.Time) {
		e.frame = 0
		if e.prevTime.IsZero() {
			e.prevTime = now
		}
		elapsed := now.Sub(e.prevTime)
		e.prevTime = now

		e.st = Step(e.st, e.cfg.Params, elapsed)
		e.publish()

		if e.AlignPosition(phase, onEnd) {
			e.frame = e.sched.RequestFrame(tick)
		}
	}
	e.frame = e.sched.RequestFrame(tick)
}

func (e *Engine) stopAnimation() {
	if e.frame != 0 {
		e.sched.CancelFrame(e.frame)
		e.frame = 0
	}
}

func (e *Engine) after(d time.Duration, fn func()) {
	var h Handle
	h = e.sched.AfterFunc(d, func() {
		delete(e.timers, h)
		fn()
	})
	e.timers[h] = pendingTimer{due: e.sched.Now().Add(d), fn: fn}
}

// clearTimers cancels pending timers and drops any held by visibility.
func (e *Engine) clearTimers() {
	for h := range e.timers {
		e.sched.CancelTimer(h)
	}
	clear(e.timers)
	e.held = nil
}

// holdTimers cancels the pending timers but keeps each callback with the
// time it had left, so a later show can re-arm them.
func (e *Engine) holdTimers() {
	now := e.sched.Now()
	held := make([]heldTimer, 0, len(e.timers))
	for h, t := range e.timers {
		e.sched.CancelTimer(h)
		held = append(held, heldTimer{left: max(t.due.Sub(now), 0), fn: t.fn})
	}
	clear(e.timers)
	slices.SortStableFunc(held, func(a, b heldTimer) int { return cmp.Compare(a.left, b.left) })
	e.held = held
}

func (e *Engine) fireAnimationEnd() {
	if e.onAnimationEnd != nil {
		e.onAnimationEnd()
	}
}

func (e *Engine) publish() {
	if e.cfg.Target != nil {
		e.cfg.Target.Apply(e.cfg.Direction.Axis(), e.st.Offset)
	}
}
