package animation

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase is the named animation phase. Exactly one is active at a time.
//
//	        play            bound (bounded mode)         delayBack
//	Idle ─────────► Forward ───────────────────► (wait) ──────────► Restart
//	                  ▲  │ wrap (infinite mode)                        │
//	                  │  └──────┐                                      │ crossed zero
//	                  │         ▼                                      ▼
//	                  └─────────┴────────────── delay ◄──────────── offset = 0
//
//	Back: return to 0 at return speed, then stop (or Forward after delay).
//	Dragging: pointer deltas drive the offset; no frames are scheduled.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseForward
	PhaseBack
	PhaseRestart
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseForward:
		return "forward"
	case PhaseBack:
		return "back"
	case PhaseRestart:
		return "restart"
	case PhaseDragging:
		return "dragging"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// returning reports whether the phase moves toward zero at return speed.
func (p Phase) returning() bool {
	return p == PhaseBack || p == PhaseRestart
}

// Outcome tells the engine shell what to do after a transition.
type Outcome int

const (
	// Continue keeps the frame loop running.
	Continue Outcome = iota
	// ScheduleRestart stops the loop; Restart begins after DelayBack.
	ScheduleRestart
	// ScheduleForward stops the loop; Forward begins after Delay.
	ScheduleForward
	// Finished stops the loop; the iteration limit was reached.
	Finished
	// Returned stops the loop; a Back phase reached zero.
	Returned
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case ScheduleRestart:
		return "schedule-restart"
	case ScheduleForward:
		return "schedule-forward"
	case Finished:
		return "finished"
	case Returned:
		return "returned"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Iterations is the number of traversals to play. Infinite never stops.
type Iterations int

// Infinite plays forever.
const Infinite Iterations = -1

// ParseIterations accepts "infinite" or a non-negative integer.
func ParseIterations(s string) (Iterations, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "infinite" {
		return Infinite, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid iterations %q", s)
	}
	return Iterations(n), nil
}

// Exhausted reports whether count completed traversals reach a finite limit.
func (n Iterations) Exhausted(count int) bool {
	return n >= 0 && count >= int(n)
}

func (n Iterations) String() string {
	if n < 0 {
		return "infinite"
	}
	return strconv.Itoa(int(n))
}
