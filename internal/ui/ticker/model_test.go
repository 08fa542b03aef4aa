package ticker

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/marquee/internal/animation"
	"github.com/andyrewlee/marquee/internal/config"
	"github.com/andyrewlee/marquee/internal/keymap"
	"github.com/andyrewlee/marquee/internal/ui/common"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type driver struct {
	t   *testing.T
	m   *Model
	now time.Time
}

func newDriver(t *testing.T, cfg config.Ticker, variant Variant, text string, width, height int) *driver {
	t.Helper()
	m := New(cfg, variant, keymap.New(config.KeyMapConfig{}))
	m.SetContent(text)
	m.SetSize(width, height)
	m.SetRegion(common.HitRegion{X: 0, Y: 0, Width: width, Height: height})
	t.Cleanup(m.Close)
	return &driver{t: t, m: m, now: epoch}
}

// fireTimers runs every timer pending right now, ignoring their delays.
func (d *driver) fireTimers() {
	handles := make([]animation.Handle, 0, len(d.m.sched.timers))
	for h := range d.m.sched.timers {
		handles = append(handles, h)
	}
	for _, h := range handles {
		d.m.Update(timerMsg{owner: d.m.id, h: h})
	}
}

// frame advances the clock by dt and delivers one frame.
func (d *driver) frame(dt time.Duration) {
	d.now = d.now.Add(dt)
	d.m.Update(frameMsg{owner: d.m.id, at: d.now})
}

func (d *driver) view() string { return ansi.Strip(d.m.View()) }

func (d *driver) press(r rune) {
	d.m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
}

func overflowTicker() config.Ticker {
	cfg := config.DefaultTicker()
	cfg.Speed = 50
	return cfg
}

func TestOverflowingTickerScrolls(t *testing.T) {
	d := newDriver(t, overflowTicker(), Smart, "0123456789", 5, 1)

	res := d.m.Result()
	if !res.Valid || res.Fits || res.Content.Width != 10 || res.Container.Width != 5 {
		t.Fatalf("unexpected measurement: %s", res)
	}
	if !d.m.CanBeAnimated() || d.m.Paused() {
		t.Fatalf("overflowing smart ticker should autoplay")
	}
	if got := d.view(); got != "01234" {
		t.Fatalf("initial view = %q", got)
	}

	d.fireTimers()
	d.frame(0)
	d.frame(100 * time.Millisecond)
	if got := d.view(); got != "56789" {
		t.Fatalf("view after 5 cells = %q", got)
	}

	d.frame(100 * time.Millisecond)
	if got := d.view(); got != "01234" {
		t.Fatalf("view after wrap = %q", got)
	}
	if d.m.State().Iteration != 1 {
		t.Fatalf("iteration = %d, want 1", d.m.State().Iteration)
	}
}

func TestFittingSmartTickerStaysStill(t *testing.T) {
	d := newDriver(t, overflowTicker(), Smart, "hi", 5, 1)

	if !d.m.Result().Fits {
		t.Fatalf("content should fit")
	}
	if d.m.CanBeAnimated() || !d.m.Paused() {
		t.Fatalf("fitting smart ticker should not animate")
	}
	if _, timers := d.m.sched.Pending(); timers != 0 {
		t.Fatalf("no motion should be scheduled, %d timers", timers)
	}
	if got := d.view(); got != "hi   " {
		t.Fatalf("view = %q", got)
	}
}

func TestViewEmptyBeforeSize(t *testing.T) {
	m := New(overflowTicker(), Smart, keymap.New(config.KeyMapConfig{}))
	defer m.Close()
	m.SetContent("hello")
	if m.View() != "" {
		t.Fatalf("unsized ticker should render nothing")
	}
	if m.Result().Valid {
		t.Fatalf("unsized ticker should have no measurement")
	}
}

func TestPlayPauseKey(t *testing.T) {
	d := newDriver(t, overflowTicker(), Smart, "0123456789", 5, 1)
	d.fireTimers()
	d.frame(0)
	d.frame(40 * time.Millisecond)

	d.press('p')
	if !d.m.Paused() {
		t.Fatalf("p should pause")
	}
	before := d.m.State().Offset
	if frames, timers := d.m.sched.Pending(); frames != 0 || timers != 0 {
		t.Fatalf("paused ticker still scheduled frames=%d timers=%d", frames, timers)
	}

	d.press('p')
	if d.m.Paused() {
		t.Fatalf("p should resume")
	}
	d.fireTimers()
	d.frame(0)
	if d.m.State().Offset != before {
		t.Fatalf("resume jumped from %v to %v", before, d.m.State().Offset)
	}
}

func TestPauseOnHover(t *testing.T) {
	cfg := overflowTicker()
	cfg.PauseOnHover = true
	d := newDriver(t, cfg, Smart, "0123456789", 5, 1)

	d.m.Update(tea.MouseMotionMsg{X: 1, Y: 0})
	if !d.m.Hovered() || !d.m.Paused() {
		t.Fatalf("hover should pause")
	}
	d.m.Update(tea.MouseMotionMsg{X: 9, Y: 3})
	if d.m.Hovered() || d.m.Paused() {
		t.Fatalf("leaving should resume")
	}
}

func TestPlayOnHoverEllipsis(t *testing.T) {
	cfg := overflowTicker()
	cfg.PlayOnHover = true
	d := newDriver(t, cfg, Smart, "hello world", 6, 1)

	if !d.m.Paused() {
		t.Fatalf("play-on-hover ticker should start paused")
	}
	if got := d.view(); got != "hello…" {
		t.Fatalf("paused view = %q, want ellipsis", got)
	}

	d.m.Update(tea.MouseMotionMsg{X: 2, Y: 0})
	if d.m.Paused() {
		t.Fatalf("hover should play")
	}
	if got := d.view(); got != "hello " {
		t.Fatalf("playing view = %q", got)
	}
}

func TestDraggableDrag(t *testing.T) {
	d := newDriver(t, overflowTicker(), Draggable, "0123456789", 5, 1)
	if !d.m.CanBeAnimated() {
		t.Fatalf("overflowing draggable should animate")
	}

	d.m.Update(tea.MouseClickMsg{X: 2, Y: 0, Button: tea.MouseLeft})
	if !d.m.Dragging() {
		t.Fatalf("press inside should start a drag")
	}
	if _, timers := d.m.sched.Pending(); timers != 0 {
		t.Fatalf("drag should cancel delayed motion")
	}

	d.m.Update(tea.MouseMotionMsg{X: 0, Y: 0, Button: tea.MouseLeft})
	if got := d.m.State().Offset; got != -2 {
		t.Fatalf("offset after drag = %v, want -2", got)
	}
	if got := d.view(); got != "23456" {
		t.Fatalf("view after drag = %q", got)
	}

	d.m.Update(tea.MouseReleaseMsg{X: 0, Y: 0, Button: tea.MouseLeft})
	if d.m.Dragging() || d.m.Paused() {
		t.Fatalf("release should resume playback")
	}
}

func TestPressOutsideDoesNotDrag(t *testing.T) {
	d := newDriver(t, overflowTicker(), Draggable, "0123456789", 5, 1)
	d.m.Update(tea.MouseClickMsg{X: 7, Y: 0, Button: tea.MouseLeft})
	if d.m.Dragging() {
		t.Fatalf("press outside should be ignored")
	}
}

func TestResizeIsDebounced(t *testing.T) {
	d := newDriver(t, overflowTicker(), Smart, "0123456789", 5, 1)

	d.m.SetSize(8, 1)
	if got := d.m.Result().Container.Width; got != 5 {
		t.Fatalf("container remeasured before debounce: %v", got)
	}
	d.fireTimers()
	if got := d.m.Result().Container.Width; got != 8 {
		t.Fatalf("container after debounce = %v, want 8", got)
	}
}

func TestVisibilitySuspendsAndResumes(t *testing.T) {
	d := newDriver(t, overflowTicker(), Smart, "0123456789", 5, 1)
	d.fireTimers()
	d.frame(0)

	d.m.Update(tea.BlurMsg{})
	if !d.m.State().SuspendedByVisibility {
		t.Fatalf("blur should suspend a running ticker")
	}
	if frames, _ := d.m.sched.Pending(); frames != 0 {
		t.Fatalf("suspended ticker still has frames")
	}

	d.m.Update(tea.FocusMsg{})
	if d.m.State().SuspendedByVisibility {
		t.Fatalf("focus should resume")
	}
	if _, timers := d.m.sched.Pending(); timers == 0 {
		t.Fatalf("focus should schedule motion")
	}
}

func TestZeroIterationsNeverMoves(t *testing.T) {
	cfg := overflowTicker()
	cfg.Iterations = 0
	d := newDriver(t, cfg, Draggable, "0123456789", 5, 1)
	if frames, timers := d.m.sched.Pending(); frames != 0 || timers != 0 {
		t.Fatalf("zero iterations scheduled frames=%d timers=%d", frames, timers)
	}
	if got := d.view(); got != "01234" {
		t.Fatalf("view = %q", got)
	}
}

func TestMultiLineClampWhilePaused(t *testing.T) {
	cfg := overflowTicker()
	cfg.MultiLine = 2
	cfg.PlayOnClick = true
	d := newDriver(t, cfg, Smart, "l1\nl2\nl3", 4, 5)

	res := d.m.Result()
	if res.Container.Height != 2 || res.Fits {
		t.Fatalf("unexpected measurement: %s", res)
	}
	if got := d.view(); got != "l1  \nl2… " {
		t.Fatalf("clamped view = %q", got)
	}
}

func TestCopyRespectsDisableSelect(t *testing.T) {
	cfg := overflowTicker()
	cfg.DisableSelect = true
	d := newDriver(t, cfg, Smart, "hello", 5, 1)
	if d.m.copyContent() != nil {
		t.Fatalf("copy should be disabled")
	}

	d = newDriver(t, overflowTicker(), Smart, "hello", 5, 1)
	if d.m.copyContent() == nil {
		t.Fatalf("copy should be available")
	}
}

func TestRecalcPicksUpContent(t *testing.T) {
	d := newDriver(t, overflowTicker(), Smart, "hi", 5, 1)
	d.m.SetContent("0123456789")
	if d.m.Result().Fits || !d.m.CanBeAnimated() {
		t.Fatalf("new content should overflow and animate")
	}
}

func TestEachModelHasOwnZone(t *testing.T) {
	a := New(overflowTicker(), Smart, keymap.New(config.KeyMapConfig{}))
	b := New(overflowTicker(), Smart, keymap.New(config.KeyMapConfig{}))
	defer a.Close()
	defer b.Close()
	if a.ZoneID() == b.ZoneID() {
		t.Fatalf("zone ids collide: %s", a.ZoneID())
	}
}
