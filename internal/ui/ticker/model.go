package ticker

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/marquee/internal/animation"
	"github.com/andyrewlee/marquee/internal/config"
	"github.com/andyrewlee/marquee/internal/geometry"
	"github.com/andyrewlee/marquee/internal/interaction"
	"github.com/andyrewlee/marquee/internal/keymap"
	"github.com/andyrewlee/marquee/internal/logging"
	"github.com/andyrewlee/marquee/internal/perf"
	"github.com/andyrewlee/marquee/internal/ui/common"
)

// Variant selects the ticker flavour.
type Variant int

const (
	// Smart scrolls content that overflows and leaves fitting content alone.
	Smart Variant = iota
	// Draggable also lets the pointer drag the content.
	Draggable
)

func (v Variant) String() string {
	if v == Draggable {
		return "draggable"
	}
	return "smart"
}

// CopiedMsg reports the result of copying the ticker content.
type CopiedMsg struct {
	Err error
}

var lastID atomic.Int64

// Model is one ticker. All engine callbacks run inside Update; Update always
// returns the commands that keep them coming.
type Model struct {
	id      int
	variant Variant
	cfg     config.Ticker
	text    string

	width    int
	height   int
	viewport geometry.Size
	sized    bool

	sched   *Scheduler
	engine  *animation.Engine
	bus     *interaction.Bus
	coord   *interaction.Coordinator
	prober  *geometry.Prober
	content *geometry.TextElement
	box     *geometry.BoxElement

	result        geometry.Result
	strip         strip
	target        animation.Positioner
	lead          int
	canBeAnimated bool

	keys   keymap.KeyMap
	styles common.Styles
	zone   *zone.Manager
	hit    common.HitRegion
	inside bool
}

// New creates a ticker. It measures once it has a size and content.
func New(cfg config.Ticker, variant Variant, km keymap.KeyMap) *Model {
	cfg = cfg.Normalize()
	m := &Model{
		id:      int(lastID.Add(1)),
		variant: variant,
		cfg:     cfg,
		keys:    km,
		styles:  common.DefaultStyles(),
	}
	if variant == Draggable {
		m.cfg.Draggable = true
		m.cfg = m.cfg.Normalize()
	}
	m.sched = NewScheduler(m.id)
	m.engine = animation.NewEngine(m.sched)
	m.bus = interaction.NewBus()
	m.coord = interaction.New(m.engine, m.bus, m.sched, interaction.Flags{
		PauseOnHover: m.cfg.PauseOnHover,
		PlayOnHover:  m.cfg.PlayOnHover,
		PauseOnClick: m.cfg.PauseOnClick,
		PlayOnClick:  m.cfg.PlayOnClick,
		Draggable:    m.cfg.Draggable,
	}, m.Recalc)
	m.content = geometry.NewTextElement("")
	m.box = geometry.NewBoxElement(0, 0)
	m.box.Child = m.content
	m.prober = geometry.NewProber(m.content, m.box, geometry.Options{}, m.cfg.WaitForFonts)
	return m
}

// Init returns no command; animation starts once the ticker is sized.
func (m *Model) Init() tea.Cmd { return nil }

// ZoneID is the bubblezone id the ticker marks its view with.
func (m *Model) ZoneID() string { return fmt.Sprintf("ticker-%d", m.id) }

// SetZone enables zone-based hit testing.
func (m *Model) SetZone(z *zone.Manager) { m.zone = z }

// SetRegion sets the screen rectangle used for hit testing when no zone
// manager is attached.
func (m *Model) SetRegion(r common.HitRegion) { m.hit = r }

// SetStyles sets the component styles.
func (m *Model) SetStyles(styles common.Styles) { m.styles = styles }

// SetViewport clamps measurements to the visible terminal area.
func (m *Model) SetViewport(width, height int) {
	m.viewport = geometry.Size{Width: float64(width), Height: float64(height)}
}

// SetSize assigns the container size. The first call is the ready signal;
// later changes are reported as resize events and re-measured once they
// settle.
func (m *Model) SetSize(width, height int) {
	if m.sized && width == m.width && height == m.height {
		return
	}
	m.width, m.height = width, height
	if !m.sized {
		m.sized = true
		m.configure()
		if !m.prober.Ready() {
			m.prober.Recalc()
		}
		m.apply()
		return
	}
	m.bus.Emit(interaction.Resize, interaction.Payload{
		Size: geometry.Size{Width: float64(width), Height: float64(height)},
	})
}

// SetContent replaces the ticker content and re-measures.
func (m *Model) SetContent(text string) {
	if text == m.text {
		return
	}
	m.text = text
	m.Recalc()
}

// Content returns the current content.
func (m *Model) Content() string { return m.text }

// Recalc measures again and restarts the animation cycle.
func (m *Model) Recalc() {
	if !m.sized {
		if m.prober.WaitForReady {
			m.prober.Recalc()
		}
		return
	}
	defer perf.Time(perf.Remeasure)()
	m.configure()
	m.prober.Recalc()
	m.apply()
}

// SetVisible reports host visibility changes.
func (m *Model) SetVisible(visible bool) {
	m.bus.Emit(interaction.VisibilityChange, interaction.Payload{Visible: visible})
}

// SetClock replaces the scheduler clock, for headless drivers.
func (m *Model) SetClock(now func() time.Time) {
	if now != nil {
		m.sched.now = now
	}
}

// Advance runs due timers and one frame at now without the event loop.
func (m *Model) Advance(now time.Time) { m.sched.Advance(now) }

// Handle exposes the imperative play/pause/reset surface.
func (m *Model) Handle() interaction.Handle { return m.coord }

// Result returns the latest measurement.
func (m *Model) Result() geometry.Result { return m.result }

// State returns the engine state.
func (m *Model) State() animation.State { return m.engine.State() }

func (m *Model) Paused() bool        { return m.coord.Paused() }
func (m *Model) Animating() bool     { return m.coord.Animating() }
func (m *Model) Hovered() bool       { return m.coord.Hovered() }
func (m *Model) Dragging() bool      { return m.coord.Dragging() }
func (m *Model) CanBeAnimated() bool { return m.canBeAnimated }
func (m *Model) Variant() Variant    { return m.variant }
func (m *Model) Config() config.Ticker {
	return m.cfg
}

// Close stops the ticker and releases its subscriptions.
func (m *Model) Close() { m.coord.Close() }

func (m *Model) configure() {
	axis := m.cfg.Direction.Axis()
	parent := geometry.Size{Width: float64(m.width), Height: float64(m.height)}
	if axis == geometry.AxisX {
		parent.Height = 1
	}

	m.content.Text = m.text
	m.content.Parent = parent
	m.content.Wrap = axis == geometry.AxisY
	c := m.content.Constraints()
	c.NoWrap = axis == geometry.AxisX
	m.content.SetConstraints(c)

	m.box.Width = m.width
	m.box.Height = int(parent.Height)
	m.box.Parent = parent

	m.prober.Options = geometry.Options{
		Direction: m.cfg.Direction,
		AutoFill:  m.cfg.AutoFill,
		MultiLine: m.cfg.MultiLine,
		Speed:     m.cfg.Speed,
		Viewport:  m.viewport,
	}
}

// apply starts a new animation cycle from the prober's result.
func (m *Model) apply() {
	res := m.prober.Result()
	m.result = res
	if !res.Valid {
		m.canBeAnimated = false
		m.coord.Start(animation.Config{}, false)
		return
	}

	axis := m.cfg.Direction.Axis()
	period := int(math.Round(res.Content.Along(axis)))
	m.strip = buildStrip(m.text, m.cfg.Direction, m.cfg.RTL, m.width, res.FillCount, period)

	infinite := m.cfg.InfiniteScrollView
	switch m.variant {
	case Draggable:
		m.canBeAnimated = !res.Fits || (!m.cfg.Smart && res.Fits && infinite)
		lead := 0.0
		if infinite {
			lead = res.Content.Along(axis)
		}
		m.lead = int(math.Round(lead))
		m.target = &animation.Edge{Lead: lead}
	default:
		m.canBeAnimated = !(m.cfg.Smart && res.Fits)
		m.lead = 0
		m.target = &animation.Translate{}
	}

	if period <= 0 {
		m.canBeAnimated = false
	}

	cfg := animation.Config{
		Params: animation.Params{
			Direction:  m.cfg.Direction,
			Speed:      m.cfg.Speed,
			SpeedBack:  m.cfg.SpeedBack,
			Delay:      m.cfg.Delay,
			DelayBack:  m.cfg.DelayBack,
			Iterations: m.cfg.Iterations,
			Infinite:   infinite,
		},
		Geometry: animation.GeometryOf(res),
		Target:   m.target,
		OnIterationsEnd: func() {
			logging.Info("ticker %d: finished %s iterations", m.id, m.cfg.Iterations)
		},
	}
	m.coord.Start(cfg, m.canBeAnimated)
}

// Update handles scheduler, key, mouse and focus messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.sched.Handle(msg) {
		return m, m.sched.Flush()
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMotionMsg:
		m.pointerMove(msg.X, msg.Y)
	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			m.pointerDown(msg.X, msg.Y)
		}
	case tea.MouseReleaseMsg:
		m.bus.Emit(interaction.PointerUp, pointAt(msg.X, msg.Y))
	case tea.FocusMsg:
		m.SetVisible(true)
	case tea.BlurMsg:
		m.SetVisible(false)
	}
	return m, common.SafeBatch(cmd, m.sched.Flush())
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.PlayPause):
		if m.coord.Paused() {
			m.coord.Play()
		} else {
			m.coord.Pause()
		}
	case key.Matches(msg, m.keys.Reset):
		m.coord.Reset(m.coord.Paused())
	case key.Matches(msg, m.keys.Snap):
		m.coord.SnapToStart()
	case key.Matches(msg, m.keys.Recalc):
		m.Recalc()
	case key.Matches(msg, m.keys.Copy):
		return m.copyContent()
	}
	return nil
}

func (m *Model) copyContent() tea.Cmd {
	if m.cfg.DisableSelect || m.text == "" {
		return nil
	}
	text := m.text
	return func() tea.Msg {
		err := common.CopyToClipboard(text)
		if err != nil {
			logging.Warn("ticker: copy failed: %v", err)
		}
		return CopiedMsg{Err: err}
	}
}

func pointAt(x, y int) interaction.Payload {
	return interaction.Payload{X: float64(x), Y: float64(y)}
}

func (m *Model) region() common.HitRegion {
	if m.zone != nil {
		if z := m.zone.Get(m.ZoneID()); z != nil && !z.IsZero() {
			return common.HitRegion{
				ID:     m.ZoneID(),
				X:      z.StartX,
				Y:      z.StartY,
				Width:  z.EndX - z.StartX + 1,
				Height: z.EndY - z.StartY + 1,
			}
		}
	}
	return m.hit
}

func (m *Model) setInside(inside bool, p interaction.Payload) {
	if inside == m.inside {
		return
	}
	m.inside = inside
	if inside {
		m.bus.Emit(interaction.PointerEnter, p)
	} else {
		m.bus.Emit(interaction.PointerLeave, p)
	}
}

func (m *Model) pointerMove(x, y int) {
	p := pointAt(x, y)
	m.setInside(m.region().Contains(x, y), p)
	m.bus.Emit(interaction.PointerMove, p)
}

func (m *Model) pointerDown(x, y int) {
	if !m.region().Contains(x, y) {
		return
	}
	p := pointAt(x, y)
	m.setInside(true, p)
	m.bus.Emit(interaction.PointerDown, p)
}

// rowEllipsis reports whether paused, overflowing text is drawn truncated
// on one row instead of as a clipped slice.
func (m *Model) rowEllipsis() bool {
	c := m.cfg
	if !m.restingOverflow() || c.Direction.Axis() != geometry.AxisX {
		return false
	}
	if m.variant == Draggable {
		return !c.PauseOnHover && !m.coord.Dragging()
	}
	return (c.Direction == geometry.Left || c.Direction == geometry.Right && c.RTL) &&
		c.IsText && c.MultiLine == 0 && c.PlayOnDemand() && !c.AutoFill
}

// columnEllipsis reports whether paused multi-line text is line-clamped.
func (m *Model) columnEllipsis() bool {
	c := m.cfg
	if !m.restingOverflow() || c.MultiLine == 0 || c.Direction != geometry.Top {
		return false
	}
	if m.variant == Draggable {
		return !c.PauseOnHover && !m.coord.Dragging()
	}
	return c.PlayOnDemand() && !c.AutoFill
}

func (m *Model) restingOverflow() bool {
	return m.result.Valid && !m.result.Fits &&
		m.coord.Paused() && !m.coord.Animating() && m.engine.Offset() == 0
}

// View renders the visible part of the ticker.
func (m *Model) View() string {
	defer perf.Time(perf.ViewRender)()
	body := m.body()
	if body == "" {
		return ""
	}
	style := m.styles.Content
	if m.coord.Paused() {
		style = m.styles.Paused
	}
	body = style.Render(body)
	if m.zone != nil {
		body = m.zone.Mark(m.ZoneID(), body)
	}
	return body
}

func (m *Model) body() string {
	if m.width <= 0 {
		return ""
	}
	if !m.result.Valid {
		rows := 1
		if m.cfg.Direction.Axis() == geometry.AxisY && m.height > 0 {
			rows = m.height
		}
		return strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", m.width)+"\n", rows), "\n")
	}

	width := int(math.Round(m.result.Container.Width))
	height := int(math.Round(m.result.Container.Height))
	switch {
	case m.rowEllipsis():
		return renderRowEllipsis(m.text, width, m.cfg.RTL || m.cfg.Direction == geometry.Right)
	case m.columnEllipsis():
		return renderLineClamp(m.text, width, height)
	}

	axis := m.cfg.Direction.Axis()
	shift := 0
	if m.engine.Initialized() {
		x, y := m.engine.Position()
		shift = x
		if axis == geometry.AxisY {
			shift = y
		}
		shift += m.lead
	}
	base := 0
	if !m.cfg.InfiniteScrollView && m.cfg.Direction.Sign() > 0 {
		base = int(math.Round(m.result.Container.Along(axis))) - m.strip.period
	}
	return render(frame{
		strip:    m.strip,
		width:    width,
		height:   height,
		shift:    shift,
		base:     base,
		infinite: m.cfg.InfiniteScrollView,
	})
}
