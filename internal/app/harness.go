package app

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/marquee/internal/config"
	"github.com/andyrewlee/marquee/internal/geometry"
	"github.com/andyrewlee/marquee/internal/keymap"
	"github.com/andyrewlee/marquee/internal/ui/common"
	"github.com/andyrewlee/marquee/internal/ui/ticker"
)

// HarnessOptions configures the headless ticker harness.
type HarnessOptions struct {
	Variant   string
	Text      string
	Width     int
	Height    int
	Speed     float64
	Direction string
	AutoFill  bool
	Bounded   bool
	// DragEvery starts a short drag every N frames (0 disables).
	DragEvery int
}

// HarnessVariant values.
const (
	HarnessSmart     = "smart"
	HarnessDraggable = "draggable"
)

// Harness drives one ticker on a manual clock for profiling.
type Harness struct {
	ticker    *ticker.Model
	now       time.Time
	dragEvery int
	width     int
}

// NewHarness builds a headless ticker.
func NewHarness(opts HarnessOptions) (*Harness, error) {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 1
	}
	if opts.Text == "" {
		opts.Text = strings.Repeat("The quick brown fox jumps over the lazy dog. ", 4)
	}

	cfg := config.DefaultTicker()
	cfg.WaitForFonts = false
	cfg.AutoFill = opts.AutoFill
	cfg.InfiniteScrollView = !opts.Bounded
	if opts.Speed > 0 {
		cfg.Speed = opts.Speed
	}
	if opts.Direction != "" {
		dir, err := geometry.ParseDirection(opts.Direction)
		if err != nil {
			return nil, err
		}
		cfg.Direction = dir
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var variant ticker.Variant
	switch opts.Variant {
	case "", HarnessSmart:
		variant = ticker.Smart
	case HarnessDraggable:
		variant = ticker.Draggable
	default:
		return nil, fmt.Errorf("unknown variant %q", opts.Variant)
	}

	h := &Harness{
		now:       time.Unix(0, 0),
		dragEvery: opts.DragEvery,
		width:     opts.Width,
	}
	h.ticker = ticker.New(cfg, variant, keymap.New(config.KeyMapConfig{}))
	h.ticker.SetClock(func() time.Time { return h.now })
	h.ticker.SetContent(opts.Text)
	h.ticker.SetViewport(opts.Width, opts.Height)
	h.ticker.SetSize(opts.Width, opts.Height)
	h.ticker.SetRegion(common.HitRegion{Width: opts.Width, Height: opts.Height})
	return h, nil
}

// Step advances the clock by one frame and applies any scripted input.
func (h *Harness) Step(frame int) {
	if h.dragEvery > 0 {
		x := h.width / 2
		switch phase := frame % h.dragEvery; {
		case phase == 0:
			h.ticker.Update(tea.MouseClickMsg{X: x, Y: 0, Button: tea.MouseLeft})
		case phase <= 10:
			h.ticker.Update(tea.MouseMotionMsg{X: x - phase, Y: 0, Button: tea.MouseLeft})
		case phase == 11:
			h.ticker.Update(tea.MouseReleaseMsg{X: x - 10, Y: 0, Button: tea.MouseLeft})
		}
	}
	h.now = h.now.Add(ticker.FrameInterval)
	h.ticker.Advance(h.now)
}

// Render returns the current ticker frame.
func (h *Harness) Render() string { return h.ticker.View() }

// Ticker exposes the driven ticker.
func (h *Harness) Ticker() *ticker.Model { return h.ticker }

// Close releases the ticker.
func (h *Harness) Close() { h.ticker.Close() }
