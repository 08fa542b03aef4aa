package animation

import (
	"math"
	"time"

	"github.com/andyrewlee/marquee/internal/geometry"
)

const (
	// MaxFrameStep caps the elapsed time a single frame may apply, so a
	// throttled or stalled host does not produce a large jump.
	MaxFrameStep = 100 * time.Millisecond
	// ImmediateSpeed is the return speed used to make a Back look instant.
	ImmediateSpeed = 1000.0
	// DragResistance divides pointer deltas that push a bounded ticker past
	// its edges.
	DragResistance = 50.0
)

// Params are the motion parameters of one configuration epoch.
type Params struct {
	Direction geometry.Direction
	// Speed is the forward speed in cells per second.
	Speed float64
	// SpeedBack is the return speed used by Back and Restart.
	SpeedBack  float64
	Delay      time.Duration
	DelayBack  time.Duration
	Iterations Iterations
	// Infinite selects wrap-around looping instead of bounded bounce-back.
	Infinite bool
}

// Geometry is the measured geometry an engine animates against.
type Geometry struct {
	Content   geometry.Size
	Container geometry.Size
}

// GeometryOf converts a measurement into engine geometry.
func GeometryOf(r geometry.Result) Geometry {
	return Geometry{Content: r.Content, Container: r.Container}
}

// State is the mutable record owned by an Engine. The functions in this file
// are pure transitions over it.
type State struct {
	Offset    float64
	Phase     Phase
	Iteration int
	Dragging  bool
	// SuspendedByVisibility is set while a hidden host froze a live loop.
	SuspendedByVisibility bool
	// StartPos is the offset at the start of the current phase. Back and
	// Restart move toward zero from whichever side it was on.
	StartPos float64
	// Immediate swaps the return speed for ImmediateSpeed until the next
	// return reaches zero.
	Immediate bool
}

// Sign is the direction of travel for the state's phase.
func Sign(st State, p Params) float64 {
	switch st.Phase {
	case PhaseForward:
		return p.Direction.Sign()
	case PhaseBack, PhaseRestart:
		if st.StartPos < 0 {
			return -1
		}
		return 1
	default:
		return 1
	}
}

func speedFor(st State, p Params) float64 {
	var v float64
	if st.Phase.returning() {
		v = p.SpeedBack
		if st.Immediate {
			v = ImmediateSpeed
		}
		// Return speed runs against the start side.
		v = -v
	} else {
		v = p.Speed
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Step advances the offset by elapsed time. Idle and Dragging do not move.
func Step(st State, p Params, elapsed time.Duration) State {
	if st.Phase == PhaseIdle || st.Phase == PhaseDragging || elapsed <= 0 {
		return st
	}
	if elapsed > MaxFrameStep {
		elapsed = MaxFrameStep
	}
	st.Offset += speedFor(st, p) * elapsed.Seconds() * Sign(st, p)
	return st
}

// crossedZero reports whether a returning offset reached or passed zero.
// The test is inclusive so floating point never stalls convergence.
func crossedZero(st State, p Params) bool {
	return st.Offset*-Sign(st, p) >= 0
}

// Align applies the boundary policy for phase and reports what the shell
// should do next.
func Align(st State, p Params, g Geometry, phase Phase) (State, Outcome) {
	axis := p.Direction.Axis()
	content := g.Content.Along(axis)
	container := g.Container.Along(axis)

	switch {
	case p.Infinite && (phase == PhaseForward || phase == PhaseDragging):
		if content > 0 {
			for st.Offset >= content {
				st.Offset -= content
				if !st.Dragging {
					st.Iteration++
				}
			}
			for st.Offset <= -content {
				st.Offset += content
				if !st.Dragging {
					st.Iteration++
				}
			}
		}
		if phase == PhaseForward && !st.Dragging && p.Iterations.Exhausted(st.Iteration) {
			st.Phase = PhaseIdle
			return st, Finished
		}

	case phase == PhaseForward:
		limit := math.Max(content-container, 0)
		if math.Abs(st.Offset) > limit {
			st.Iteration++
			st.Offset = math.Copysign(limit, st.Offset)
			st.Phase = PhaseRestart
			st.StartPos = st.Offset
			return st, ScheduleRestart
		}

	case phase == PhaseRestart:
		if crossedZero(st, p) {
			st.Offset = 0
			st.Immediate = false
			if p.Iterations.Exhausted(st.Iteration) {
				st.Phase = PhaseIdle
				return st, Finished
			}
			return st, ScheduleForward
		}

	case phase == PhaseBack:
		if crossedZero(st, p) {
			st.Offset = 0
			st.Phase = PhaseIdle
			st.Immediate = false
			return st, Returned
		}
	}
	return st, Continue
}

// Drag applies a pointer delta along the active axis. Infinite tickers wrap
// as in Forward without counting iterations; bounded tickers resist being
// pulled past their edges.
func Drag(st State, p Params, g Geometry, delta float64) (State, Outcome) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return st, Continue
	}
	if p.Infinite {
		st.Offset += delta
		return Align(st, p, g, PhaseDragging)
	}

	axis := p.Direction.Axis()
	span := math.Max(g.Content.Along(axis)-g.Container.Along(axis), 0)
	lo, hi := -span, 0.0
	if p.Direction.Sign() > 0 {
		lo, hi = 0, span
	}
	if next := st.Offset + delta; next < lo || next > hi {
		delta /= DragResistance
	}
	st.Offset += delta
	return st, Continue
}
