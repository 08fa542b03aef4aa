// Package geometry measures ticker content against its container and decides
// whether the content has to move at all.
//
// Sizes are terminal cells. Measurement neutralises the layout constraints the
// host applied to both elements, reads their natural bounds, restores the
// constraints and derives the fit decision, the auto-fill repeat count and the
// cycle duration for a given speed.
package geometry

import (
	"fmt"
	"strings"
)

// Size is a width/height pair in cells.
type Size struct {
	Width  float64
	Height float64
}

// Along returns the dimension on axis a.
func (s Size) Along(a Axis) float64 {
	if a == AxisY {
		return s.Height
	}
	return s.Width
}

// With returns a copy of s with the dimension on axis a replaced by v.
func (s Size) With(a Axis, v float64) Size {
	if a == AxisY {
		s.Height = v
	} else {
		s.Width = v
	}
	return s
}

// IsZero reports whether either dimension is empty.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Axis is the single dimension along which a ticker moves.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Direction is the configured direction of travel.
type Direction int

const (
	Left Direction = iota
	Right
	Top
	Bottom
)

// ParseDirection accepts "left", "right", "top" and "bottom".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "top", "up":
		return Top, nil
	case "bottom", "down":
		return Bottom, nil
	}
	return Left, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "left"
	}
}

// Axis returns x for left/right and y for top/bottom.
func (d Direction) Axis() Axis {
	if d == Top || d == Bottom {
		return AxisY
	}
	return AxisX
}

// Sign is the sign of forward motion: negative for left and top.
func (d Direction) Sign() float64 {
	if d == Left || d == Top {
		return -1
	}
	return 1
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
