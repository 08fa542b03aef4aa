package geometry

import (
	"github.com/andyrewlee/marquee/internal/logging"
)

// Prober keeps the latest measurement for one ticker and re-measures on
// demand. When WaitForReady is set nothing is measured until Ready is called,
// mirroring hosts that must wait for their text metrics to settle.
type Prober struct {
	Content   Element
	Container Element
	Options   Options

	WaitForReady bool

	ready   bool
	pending bool
	result  Result
	epoch   int
}

// NewProber creates a prober for a content/container pair.
func NewProber(content, container Element, opts Options, waitForReady bool) *Prober {
	return &Prober{
		Content:      content,
		Container:    container,
		Options:      opts,
		WaitForReady: waitForReady,
	}
}

// Result returns the last measurement. It is invalid until the first
// successful Recalc.
func (p *Prober) Result() Result { return p.result }

// Epoch increments on every completed measurement so callers can detect a
// new geometry cycle.
func (p *Prober) Epoch() int { return p.epoch }

// Pending reports whether a measurement is waiting for the ready signal.
func (p *Prober) Pending() bool { return p.pending }

// Recalc invalidates the current result and measures again. It returns false
// when the measurement was deferred or failed.
func (p *Prober) Recalc() bool {
	p.result = Result{}
	if p.WaitForReady && !p.ready {
		p.pending = true
		return false
	}
	return p.measure()
}

// Ready delivers the ready signal and runs a deferred measurement, if any.
func (p *Prober) Ready() bool {
	p.ready = true
	if !p.pending {
		return false
	}
	return p.measure()
}

func (p *Prober) measure() bool {
	p.pending = false
	res, err := Measure(p.Content, p.Container, p.Options)
	if err != nil {
		logging.WithError(err, "geometry: measure")
		return false
	}
	if !res.Valid {
		return false
	}
	p.result = res
	p.epoch++
	logging.Debug("geometry: %s", res)
	return true
}
