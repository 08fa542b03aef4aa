package animation

import (
	"math"

	"github.com/andyrewlee/marquee/internal/geometry"
)

// Positioner is the positioning strategy: how an engine's offset is exposed
// to the renderer. It is chosen once per engine.
type Positioner interface {
	Apply(axis geometry.Axis, offset float64)
	// Cells returns the integer cell shift to render.
	Cells() (x, y int)
}

// Translate exposes the offset as a shift of the content relative to its
// resting place, rounded to the nearest cell.
type Translate struct {
	X, Y float64
}

func (t *Translate) Apply(axis geometry.Axis, offset float64) {
	t.X, t.Y = 0, 0
	if axis == geometry.AxisY {
		t.Y = offset
	} else {
		t.X = offset
	}
}

func (t *Translate) Cells() (int, int) {
	return int(math.Round(t.X)), int(math.Round(t.Y))
}

// Edge exposes the offset as the position of the leading edge of a wrapper
// that starts Lead cells before the viewport, the layout used by draggable
// tickers that keep a copy of the content on either side.
type Edge struct {
	Lead float64

	axis geometry.Axis
	pos  float64
}

func (e *Edge) Apply(axis geometry.Axis, offset float64) {
	e.axis = axis
	e.pos = offset - e.Lead
}

func (e *Edge) Cells() (int, int) {
	v := int(math.Floor(e.pos))
	if e.axis == geometry.AxisY {
		return 0, v
	}
	return v, 0
}
