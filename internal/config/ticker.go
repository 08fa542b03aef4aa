package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/andyrewlee/marquee/internal/animation"
	"github.com/andyrewlee/marquee/internal/geometry"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid ticker config")

// Ticker holds the options of one ticker.
type Ticker struct {
	// Smart suppresses animation when the content already fits.
	Smart bool
	// IsText enables ellipsis rendering while paused on demand.
	IsText bool
	// WaitForFonts delays the first measurement until the host is ready.
	WaitForFonts bool
	// MultiLine is the number of visible lines of vertically scrolled text.
	// Zero keeps content on one line.
	MultiLine int

	Speed     float64 // cells per second
	SpeedBack float64 // cells per second
	Delay     time.Duration
	DelayBack time.Duration

	Iterations animation.Iterations
	Direction  geometry.Direction
	RTL        bool

	InfiniteScrollView bool
	AutoFill           bool

	PauseOnHover  bool
	PlayOnHover   bool
	PauseOnClick  bool
	PlayOnClick   bool
	Draggable     bool
	DisableSelect bool
}

// DefaultTicker returns the default ticker options.
func DefaultTicker() Ticker {
	return Ticker{
		Smart:              true,
		IsText:             true,
		WaitForFonts:       true,
		Speed:              50,
		SpeedBack:          200,
		DelayBack:          500 * time.Millisecond,
		Iterations:         animation.Infinite,
		Direction:          geometry.Left,
		InfiniteScrollView: true,
	}
}

// PlayOnDemand reports whether the ticker only plays while hovered or held.
func (t Ticker) PlayOnDemand() bool { return t.PlayOnHover || t.PlayOnClick }

// Normalize applies the rules that derive one option from another.
func (t Ticker) Normalize() Ticker {
	t.Smart = t.Smart && !t.AutoFill
	if t.PlayOnDemand() {
		t.PauseOnHover = false
		t.PauseOnClick = false
	}
	if t.Draggable {
		t.PauseOnClick = false
		t.PlayOnClick = false
	}
	if t.MultiLine > 0 {
		t.Direction = geometry.Top
		t.IsText = true
	}
	return t
}

// Validate rejects settings the engine cannot run with.
func (t Ticker) Validate() error {
	var errs []error
	check := func(bad bool, format string, args ...any) {
		if bad {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}
	check(t.Speed < 0 || math.IsNaN(t.Speed) || math.IsInf(t.Speed, 0), "speed %v", t.Speed)
	check(t.SpeedBack < 0 || math.IsNaN(t.SpeedBack) || math.IsInf(t.SpeedBack, 0), "speed back %v", t.SpeedBack)
	check(t.Delay < 0, "delay %s", t.Delay)
	check(t.DelayBack < 0, "delay back %s", t.DelayBack)
	check(t.Iterations < animation.Infinite, "iterations %d", int(t.Iterations))
	check(t.MultiLine < 0, "multi-line %d", t.MultiLine)
	check(t.Direction < geometry.Left || t.Direction > geometry.Bottom, "direction %d", int(t.Direction))
	return errors.Join(errs...)
}

// tickerFile is the on-disk shape. Durations are milliseconds and unset
// fields keep their defaults.
type tickerFile struct {
	Smart        *bool `json:"smart,omitempty" yaml:"smart,omitempty"`
	IsText       *bool `json:"isText,omitempty" yaml:"isText,omitempty"`
	WaitForFonts *bool `json:"waitForFonts,omitempty" yaml:"waitForFonts,omitempty"`
	MultiLine    *int  `json:"multiLine,omitempty" yaml:"multiLine,omitempty"`

	Speed     *float64 `json:"speed,omitempty" yaml:"speed,omitempty"`
	SpeedBack *float64 `json:"speedBack,omitempty" yaml:"speedBack,omitempty"`
	Delay     *int     `json:"delay,omitempty" yaml:"delay,omitempty"`
	DelayBack *int     `json:"delayBack,omitempty" yaml:"delayBack,omitempty"`

	Iterations any     `json:"iterations,omitempty" yaml:"iterations,omitempty"`
	Direction  *string `json:"direction,omitempty" yaml:"direction,omitempty"`
	RTL        *bool   `json:"rtl,omitempty" yaml:"rtl,omitempty"`

	InfiniteScrollView *bool `json:"infiniteScrollView,omitempty" yaml:"infiniteScrollView,omitempty"`
	AutoFill           *bool `json:"autoFill,omitempty" yaml:"autoFill,omitempty"`

	PauseOnHover  *bool `json:"pauseOnHover,omitempty" yaml:"pauseOnHover,omitempty"`
	PlayOnHover   *bool `json:"playOnHover,omitempty" yaml:"playOnHover,omitempty"`
	PauseOnClick  *bool `json:"pauseOnClick,omitempty" yaml:"pauseOnClick,omitempty"`
	PlayOnClick   *bool `json:"playOnClick,omitempty" yaml:"playOnClick,omitempty"`
	Draggable     *bool `json:"draggable,omitempty" yaml:"draggable,omitempty"`
	DisableSelect *bool `json:"disableSelect,omitempty" yaml:"disableSelect,omitempty"`
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func millis(ms int) time.Duration { return time.Duration(ms) * time.Millisecond }

// apply overlays the fields present in f onto t.
func (f tickerFile) apply(t Ticker) (Ticker, error) {
	setBool(&t.Smart, f.Smart)
	setBool(&t.IsText, f.IsText)
	// waitForFonts follows isText unless given.
	if f.IsText != nil {
		t.WaitForFonts = t.IsText
	}
	setBool(&t.WaitForFonts, f.WaitForFonts)
	if f.MultiLine != nil {
		t.MultiLine = *f.MultiLine
	}
	if f.Speed != nil {
		t.Speed = *f.Speed
	}
	if f.SpeedBack != nil {
		t.SpeedBack = *f.SpeedBack
	}
	if f.Delay != nil {
		t.Delay = millis(*f.Delay)
	}
	if f.DelayBack != nil {
		t.DelayBack = millis(*f.DelayBack)
	}
	if f.Iterations != nil {
		n, err := parseIterations(f.Iterations)
		if err != nil {
			return t, err
		}
		t.Iterations = n
	}
	setBool(&t.RTL, f.RTL)
	switch {
	case f.Direction != nil:
		d, err := geometry.ParseDirection(*f.Direction)
		if err != nil {
			return t, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		t.Direction = d
	case t.RTL:
		t.Direction = geometry.Right
	}
	setBool(&t.InfiniteScrollView, f.InfiniteScrollView)
	setBool(&t.AutoFill, f.AutoFill)
	setBool(&t.PauseOnHover, f.PauseOnHover)
	setBool(&t.PlayOnHover, f.PlayOnHover)
	setBool(&t.PauseOnClick, f.PauseOnClick)
	setBool(&t.PlayOnClick, f.PlayOnClick)
	setBool(&t.Draggable, f.Draggable)
	setBool(&t.DisableSelect, f.DisableSelect)
	return t, nil
}

func parseIterations(v any) (animation.Iterations, error) {
	switch n := v.(type) {
	case int:
		return intIterations(n)
	case int64:
		return intIterations(int(n))
	case uint64:
		return intIterations(int(n))
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: iterations %v", ErrInvalid, n)
		}
		return intIterations(int(n))
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return intIterations(i)
		}
		it, err := animation.ParseIterations(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		return it, nil
	default:
		return 0, fmt.Errorf("%w: iterations of type %T", ErrInvalid, v)
	}
}

func intIterations(n int) (animation.Iterations, error) {
	if n < int(animation.Infinite) {
		return 0, fmt.Errorf("%w: iterations %d", ErrInvalid, n)
	}
	return animation.Iterations(n), nil
}
