package geometry

import (
	"errors"
	"strings"

	"charm.land/lipgloss/v2"
)

// ErrNoLayout is returned by elements that have not been laid out yet.
var ErrNoLayout = errors.New("element has no layout")

// Display controls how an element sizes itself against its parent.
type Display int

const (
	// DisplayBlock stretches the element across its parent on the x axis.
	DisplayBlock Display = iota
	// DisplayInline shrinks the element to its content.
	DisplayInline
)

// Overflow controls whether max constraints clip the reported size.
type Overflow int

const (
	OverflowHidden Overflow = iota
	OverflowVisible
)

// Constraints are the layout-affecting properties of an element. Zero values
// mean "auto" / "unset".
type Constraints struct {
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
	Display   Display
	Overflow  Overflow
	// NoWrap keeps text on one line.
	NoWrap bool
	// Fill makes a box take its parent's full size.
	Fill bool
	// ClampToParent caps the size at the parent's size.
	ClampToParent bool
}

// Element is anything the prober can measure.
type Element interface {
	Constraints() Constraints
	SetConstraints(Constraints)
	Bounds() (Size, error)
}

// TextElement is ticker content backed by a (possibly styled) string.
type TextElement struct {
	Text string
	// Parent is the size of the box the text is laid out in. Wrapping uses
	// Parent.Width unless NoWrap is set.
	Parent Size
	// Wrap enables soft wrapping at Parent.Width (vertical tickers).
	Wrap bool

	c Constraints
}

// NewTextElement creates a block-level text element.
func NewTextElement(text string) *TextElement {
	return &TextElement{Text: text}
}

func (t *TextElement) Constraints() Constraints     { return t.c }
func (t *TextElement) SetConstraints(c Constraints) { t.c = c }

// Bounds renders the text under the current constraints and reports its size.
func (t *TextElement) Bounds() (Size, error) {
	if t == nil {
		return Size{}, ErrNoLayout
	}
	if t.Text == "" {
		return Size{}, nil
	}

	text := t.Text
	var w, h int
	switch {
	case t.c.NoWrap:
		text = strings.ReplaceAll(text, "\n", " ")
		w, h = lipgloss.Width(text), 1
	case t.Wrap && t.Parent.Width >= 1:
		w, h = lipgloss.Size(lipgloss.NewStyle().Width(int(t.Parent.Width)).Render(text))
	default:
		w, h = lipgloss.Size(text)
	}

	if t.c.Display == DisplayBlock && float64(w) < t.Parent.Width {
		w = int(t.Parent.Width)
	}
	return applyMinMax(Size{Width: float64(w), Height: float64(h)}, t.c), nil
}

// BoxElement is a container. Its size is either assigned, taken from its
// parent (Fill), or shrunk to its child.
type BoxElement struct {
	Width  int
	Height int
	Parent Size
	Child  Element

	c Constraints
}

// NewBoxElement creates a container of the given assigned size (0 = auto).
func NewBoxElement(width, height int) *BoxElement {
	return &BoxElement{Width: width, Height: height}
}

func (b *BoxElement) Constraints() Constraints     { return b.c }
func (b *BoxElement) SetConstraints(c Constraints) { b.c = c }

// Bounds reports the box size.
func (b *BoxElement) Bounds() (Size, error) {
	if b == nil {
		return Size{}, ErrNoLayout
	}

	var child Size
	if (b.Width == 0 || b.Height == 0) && b.Child != nil {
		var err error
		if child, err = b.Child.Bounds(); err != nil {
			return Size{}, err
		}
	}

	s := Size{Width: float64(b.Width), Height: float64(b.Height)}
	switch {
	case b.c.Fill:
		s = b.Parent
	default:
		if b.Width == 0 {
			s.Width = child.Width
			if b.c.Display == DisplayBlock && b.Parent.Width > s.Width {
				s.Width = b.Parent.Width
			}
		}
		if b.Height == 0 {
			s.Height = child.Height
		}
	}

	if b.c.ClampToParent {
		if b.Parent.Width > 0 && s.Width > b.Parent.Width {
			s.Width = b.Parent.Width
		}
		if b.Parent.Height > 0 && s.Height > b.Parent.Height {
			s.Height = b.Parent.Height
		}
	}
	return applyMinMax(s, b.c), nil
}

func applyMinMax(s Size, c Constraints) Size {
	if c.MinWidth > 0 && s.Width < float64(c.MinWidth) {
		s.Width = float64(c.MinWidth)
	}
	if c.MinHeight > 0 && s.Height < float64(c.MinHeight) {
		s.Height = float64(c.MinHeight)
	}
	if c.Overflow == OverflowVisible {
		return s
	}
	if c.MaxWidth > 0 && s.Width > float64(c.MaxWidth) {
		s.Width = float64(c.MaxWidth)
	}
	if c.MaxHeight > 0 && s.Height > float64(c.MaxHeight) {
		s.Height = float64(c.MaxHeight)
	}
	return s
}
