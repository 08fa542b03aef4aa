package interaction

import (
	"github.com/andyrewlee/marquee/internal/animation"
	"github.com/andyrewlee/marquee/internal/geometry"
	"github.com/andyrewlee/marquee/internal/logging"
)

// Handle is the command interface a host uses to drive a ticker.
type Handle interface {
	Play()
	Pause()
	Reset(pauseAfter bool)
}

// Flags select the interaction behaviors of a ticker.
type Flags struct {
	PauseOnHover bool
	PlayOnHover  bool
	PauseOnClick bool
	PlayOnClick  bool
	// Draggable replaces click handling with pointer dragging.
	Draggable bool
}

// Normalize applies the precedence rules: play-on-demand disables the
// pause flags, and a draggable ticker has no click behaviors.
func (f Flags) Normalize() Flags {
	if f.PlayOnHover || f.PlayOnClick {
		f.PauseOnHover = false
		f.PauseOnClick = false
	}
	if f.Draggable {
		f.PauseOnClick = false
		f.PlayOnClick = false
	}
	return f
}

// PlayOnDemand reports whether the ticker only plays while hovered or held.
func (f Flags) PlayOnDemand() bool { return f.PlayOnHover || f.PlayOnClick }

// Coordinator translates events on a Bus into engine commands and tracks
// the paused and animating flags the presentation layer styles against.
type Coordinator struct {
	engine *animation.Engine
	bus    *Bus
	flags  Flags

	cfg           animation.Config
	canBeAnimated bool

	paused    bool
	animating bool
	hovered   bool
	dragging  bool

	lastX, lastY float64

	subs   Scope
	press  Scope
	resize *Debouncer
	closed bool
}

var _ Handle = (*Coordinator)(nil)

// New subscribes a coordinator to bus. remeasure runs after resize events
// settle and is expected to call Start with the new measurement.
func New(engine *animation.Engine, bus *Bus, sched animation.Scheduler, flags Flags, remeasure func()) *Coordinator {
	c := &Coordinator{
		engine: engine,
		bus:    bus,
		flags:  flags.Normalize(),
		paused: true,
	}
	c.resize = NewDebouncer(sched, ResizeDebounce, remeasure)

	if c.flags.PauseOnHover || c.flags.PlayOnHover {
		c.subs.Subscribe(bus, PointerEnter, func(Payload) { c.hover(true) })
		c.subs.Subscribe(bus, PointerLeave, func(Payload) { c.hover(false) })
	}
	if c.flags.Draggable {
		c.subs.Subscribe(bus, PointerDown, func(p Payload) { c.beginDrag(p, PointerMove, PointerUp) })
		c.subs.Subscribe(bus, TouchStart, func(p Payload) { c.beginDrag(p, TouchMove, TouchEnd) })
	} else if c.flags.PauseOnClick || c.flags.PlayOnClick {
		c.subs.Subscribe(bus, PointerDown, func(Payload) { c.beginPress(PointerUp) })
		c.subs.Subscribe(bus, TouchStart, func(Payload) { c.beginPress(TouchEnd) })
	}
	c.subs.Subscribe(bus, Resize, func(Payload) { c.resize.Trigger() })
	c.subs.Subscribe(bus, VisibilityChange, func(p Payload) { c.engine.ToggleByVisibility(p.Visible) })
	return c
}

// Start re-initialises the engine for a new measurement. The ticker starts
// playing unless it cannot be animated or only plays on demand.
func (c *Coordinator) Start(cfg animation.Config, canBeAnimated bool) {
	if c.closed {
		return
	}
	c.press.Close()
	c.cfg = cfg
	c.canBeAnimated = canBeAnimated
	c.paused = true
	c.animating = false
	c.dragging = false
	c.engine.Init(cfg)

	if canBeAnimated && !c.flags.PlayOnDemand() {
		c.setPaused(false)
	}
	logging.Debug("interaction: start canBeAnimated=%t paused=%t", canBeAnimated, c.paused)
}

// Close releases every subscription and timer. It is safe to call more than
// once.
func (c *Coordinator) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.press.Close()
	c.subs.Close()
	c.resize.Cancel()
	c.engine.Destroy()
}

// Paused reports whether the ticker is paused.
func (c *Coordinator) Paused() bool { return c.paused }

// Animating reports whether motion is in progress or about to start.
func (c *Coordinator) Animating() bool { return c.animating }

// Hovered reports whether the pointer is over the ticker.
func (c *Coordinator) Hovered() bool { return c.hovered }

// Dragging reports whether a drag is in progress.
func (c *Coordinator) Dragging() bool { return c.dragging }

// CanBeAnimated reports the value passed to the last Start.
func (c *Coordinator) CanBeAnimated() bool { return c.canBeAnimated }

// Flags returns the normalised flags.
func (c *Coordinator) Flags() Flags { return c.flags }

// Play starts or resumes playback.
func (c *Coordinator) Play() {
	if c.closed {
		return
	}
	c.paused = false
	c.animating = true
	c.engine.Play(func() {
		c.paused = true
		c.animating = false
	}, false)
}

// Pause freezes the ticker in place.
func (c *Coordinator) Pause() {
	if c.closed {
		return
	}
	c.engine.Pause()
	c.paused = true
	c.animating = false
}

// Reset returns the ticker to its start, then pauses or keeps playing.
func (c *Coordinator) Reset(pauseAfter bool) {
	if c.closed {
		return
	}
	c.paused = false
	c.animating = true
	c.engine.BackToStartPosition(pauseAfter, func() {
		c.paused = pauseAfter
		if pauseAfter {
			c.animating = false
		}
	}, false)
}

// SnapToStart returns to the start position at immediate speed and pauses.
func (c *Coordinator) SnapToStart() {
	if c.closed {
		return
	}
	c.engine.BackToStartPosition(true, func() {
		c.paused = true
		c.animating = false
	}, true)
}

// setPaused mirrors a change of the paused flag onto the engine. It only
// acts on a change.
func (c *Coordinator) setPaused(p bool) {
	if c.paused == p {
		return
	}
	c.paused = p
	c.syncPaused(false)
}

func (c *Coordinator) syncPaused(continueAfter bool) {
	if c.paused {
		c.engine.Pause()
		if c.flags.PlayOnDemand() {
			// Replay from the start on the next hover or press.
			c.engine.SetCounter(0)
			c.engine.BackToStartPosition(true, func() { c.animating = false }, false)
		}
		return
	}
	if c.canBeAnimated {
		c.engine.Play(c.animationEnded, continueAfter)
		c.animating = true
	}
}

func (c *Coordinator) animationEnded() {
	if c.hovered && c.flags.PlayOnHover {
		c.engine.Pause()
		return
	}
	c.paused = true
	c.animating = false
}

func (c *Coordinator) hover(hovered bool) {
	c.hovered = hovered
	if c.engine.IsDragging() {
		return
	}
	switch {
	case c.flags.PlayOnHover:
		c.demand(hovered)
	case c.flags.PauseOnHover:
		c.setPaused(hovered)
	}
}

// demand starts playback for play-on-demand, continuing from a return in
// progress, or stops it.
func (c *Coordinator) demand(on bool) {
	if c.paused == !on {
		return
	}
	c.paused = !on
	c.syncPaused(on)
}

func (c *Coordinator) beginPress(release Event) {
	if c.press.Len() > 0 {
		return
	}
	c.pressed(true)
	c.press.Subscribe(c.bus, release, func(Payload) {
		c.press.Close()
		c.pressed(false)
	})
}

func (c *Coordinator) pressed(down bool) {
	switch {
	case c.flags.PauseOnClick:
		c.setPaused(down)
	case c.flags.PlayOnClick:
		c.demand(down)
	}
}

func (c *Coordinator) beginDrag(p Payload, move, release Event) {
	if c.press.Len() > 0 || !c.engine.Initialized() {
		return
	}
	c.dragging = true
	c.lastX, c.lastY = p.X, p.Y
	c.engine.SetDragging(true)
	logging.Debug("interaction: drag start at %.1f,%.1f offset=%.2f", p.X, p.Y, c.engine.Offset())

	c.press.Subscribe(c.bus, move, c.dragMove)
	c.press.Subscribe(c.bus, release, func(Payload) {
		c.press.Close()
		c.endDrag()
	})
}

func (c *Coordinator) dragMove(p Payload) {
	dx, dy := p.X-c.lastX, p.Y-c.lastY
	c.lastX, c.lastY = p.X, p.Y
	if c.cfg.Direction.Axis() == geometry.AxisY {
		c.engine.ApplyDrag(dy)
	} else {
		c.engine.ApplyDrag(dx)
	}
}

func (c *Coordinator) endDrag() {
	c.dragging = false
	c.engine.SetDragging(false)
	logging.Debug("interaction: drag end offset=%.2f counter=%d", c.engine.Offset(), c.engine.Counter())

	stopped := func() {
		c.setPaused(true)
		c.animating = false
	}
	remaining := !c.cfg.Iterations.Exhausted(c.engine.Counter())
	if c.canBeAnimated && !c.flags.PlayOnHover && remaining {
		c.setPaused(false)
		c.animating = true
		c.engine.Play(stopped, false)
		return
	}
	c.setPaused(false)
	c.animating = true
	c.engine.BackToStartPosition(true, stopped, false)
}
