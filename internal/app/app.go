package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/marquee/internal/config"
	"github.com/andyrewlee/marquee/internal/geometry"
	"github.com/andyrewlee/marquee/internal/keymap"
	"github.com/andyrewlee/marquee/internal/logging"
	"github.com/andyrewlee/marquee/internal/messages"
	"github.com/andyrewlee/marquee/internal/source"
	"github.com/andyrewlee/marquee/internal/supervisor"
	"github.com/andyrewlee/marquee/internal/ui/common"
	"github.com/andyrewlee/marquee/internal/ui/ticker"
)

const toastDuration = 3 * time.Second

// Options select what the app shows.
type Options struct {
	Variant ticker.Variant
	Source  source.Source
	// SourceName labels the source in the title line.
	SourceName string
	// Restart decides whether the source is rerun after it returns.
	Restart supervisor.RestartPolicy
}

// App is the root Bubbletea model
type App struct {
	// Configuration
	config     *config.Config
	source     source.Source
	sourceName string
	restart    supervisor.RestartPolicy
	workers    *supervisor.Supervisor

	// Components
	ticker *ticker.Model
	keymap keymap.KeyMap
	help   help.Model
	zone   *zone.Manager
	styles common.Styles

	// State
	width    int
	height   int
	ready    bool
	quitting bool
	toast    *messages.Toast
	toastSeq int

	ctx      context.Context
	cancel   context.CancelFunc
	shutdown sync.Once

	externalMsgs        chan tea.Msg
	externalSender      func(tea.Msg)
	externalOnce        sync.Once
	externalDropLastLog atomic.Int64
}

// New creates the root model.
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if opts.Source == nil {
		return nil, errors.New("app: nil source")
	}
	name := opts.SourceName
	if name == "" {
		name = "text"
	}

	km := keymap.New(cfg.KeyMap)
	a := &App{
		config:     cfg,
		source:     opts.Source,
		sourceName: name,
		restart:    opts.Restart,
		ticker:     ticker.New(cfg.Ticker, opts.Variant, km),
		keymap:     km,
		help:       help.New(),
		zone:       zone.New(),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.workers = supervisor.New(a.ctx)
	a.ticker.SetZone(a.zone)
	a.applyTheme(common.GetTheme(common.ThemeID(cfg.UI.Theme)))
	return a, nil
}

// Init loads the initial content and starts watching the source.
func (a *App) Init() tea.Cmd {
	a.startSource()
	return common.SafeBatch(a.loadContent(), a.ticker.Init())
}

func (a *App) loadContent() tea.Cmd {
	src, name := a.source, a.sourceName
	return func() tea.Msg {
		text, err := src.Load()
		if err != nil {
			return messages.SourceError{Source: name, Err: err}
		}
		return messages.ContentLoaded{Text: text, Source: name}
	}
}

// startSource runs the source under the supervisor, feeding updates through
// the external message queue.
func (a *App) startSource() {
	if a.externalSender == nil {
		return
	}
	src, name := a.source, a.sourceName
	a.workers.Start("source-"+name, func(ctx context.Context) error {
		return src.Run(ctx, func(text string) {
			a.enqueueExternalMsg(messages.ContentLoaded{Text: text, Source: name})
		})
	},
		supervisor.WithRestartPolicy(a.restart),
		supervisor.WithErrorHandler(func(_ string, err error) {
			a.enqueueExternalMsg(messages.SourceError{Source: name, Err: err})
		}),
	)
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.updateLayout()

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, a.keymap.Quit):
			a.quitting = true
			a.Shutdown()
			return a, tea.Quit
		case key.Matches(msg, a.keymap.Help):
			a.help.ShowAll = !a.help.ShowAll
			a.updateLayout()
		case key.Matches(msg, a.keymap.Theme):
			cmds = append(cmds, a.nextTheme())
		}

	case messages.ContentLoaded:
		a.ticker.SetContent(msg.Text)

	case messages.SourceError:
		logging.Error("source %s: %v", msg.Source, msg.Err)
		cmds = append(cmds, a.showToast(messages.Toast{Message: msg.Error(), Level: messages.ToastError}))

	case messages.Toast:
		cmds = append(cmds, a.showToast(msg))

	case messages.ToastExpired:
		if msg.Seq == a.toastSeq {
			a.toast = nil
		}

	case messages.SettingsSaved:
		if msg.Err != nil {
			logging.Warn("saving settings: %v", msg.Err)
			cmds = append(cmds, a.showToast(messages.Toast{Message: "could not save settings", Level: messages.ToastWarning}))
		}

	case ticker.CopiedMsg:
		if msg.Err != nil {
			cmds = append(cmds, a.showToast(messages.Toast{Message: "copy failed", Level: messages.ToastError}))
		} else {
			cmds = append(cmds, a.showToast(messages.Toast{Message: "copied", Level: messages.ToastSuccess}))
		}

	case common.ErrorMsg:
		if !msg.Logged {
			logging.Error("%s", msg.Error())
		}
		cmds = append(cmds, a.showToast(messages.Toast{Message: msg.Error(), Level: messages.ToastError}))
	}

	_, cmd := a.ticker.Update(msg)
	cmds = append(cmds, cmd)
	return a, common.SafeBatch(cmds...)
}

func (a *App) showToast(t messages.Toast) tea.Cmd {
	a.toastSeq++
	a.toast = &t
	seq := a.toastSeq
	return common.SafeTick(toastDuration, func(time.Time) tea.Msg {
		return messages.ToastExpired{Seq: seq}
	})
}

func (a *App) nextTheme() tea.Cmd {
	t := common.NextTheme(common.ThemeID(a.config.UI.Theme))
	a.config.UI.Theme = string(t.ID)
	a.applyTheme(t)
	logging.Info("theme: %s", t.ID)

	snapshot := *a.config
	return func() tea.Msg {
		return messages.SettingsSaved{Err: snapshot.SaveUISettings()}
	}
}

func (a *App) applyTheme(t common.Theme) {
	a.styles = common.StylesFor(t)
	a.ticker.SetStyles(a.styles)
	a.help.Styles.ShortKey = a.styles.HelpKey
	a.help.Styles.ShortDesc = a.styles.HelpDesc
	a.help.Styles.ShortSeparator = a.styles.HelpSeparator
	a.help.Styles.FullKey = a.styles.HelpKey
	a.help.Styles.FullDesc = a.styles.HelpDesc
	a.help.Styles.FullSeparator = a.styles.HelpSeparator
	a.help.Styles.Ellipsis = a.styles.HelpSeparator
}

// chromeHeight is the number of rows around the ticker.
func (a *App) chromeHeight() int {
	rows := 1 + 2 // title, frame border
	if a.config.UI.ShowStatus {
		rows++
	}
	rows++ // toast
	if a.config.UI.ShowKeymapHints {
		rows += lipgloss.Height(a.help.View(a.keymap))
	}
	return rows
}

func (a *App) updateLayout() {
	if !a.ready {
		return
	}
	a.help.SetWidth(a.width)
	width := max(a.width-2, 1)
	height := 1
	if a.ticker.Config().Direction.Axis() == geometry.AxisY {
		height = max(a.height-a.chromeHeight(), 1)
	}
	a.ticker.SetViewport(a.width, a.height)
	a.ticker.SetSize(width, height)
}

// View renders the application.
func (a *App) View() tea.View {
	view := tea.View{
		AltScreen:   true,
		MouseMode:   tea.MouseModeAllMotion,
		ReportFocus: true,
	}
	switch {
	case a.quitting:
		view.SetContent("")
	case !a.ready:
		view.SetContent("Loading...")
	default:
		view.SetContent(a.zone.Scan(a.render()))
	}
	return view
}

func (a *App) render() string {
	title := a.styles.Title.Render("marquee") +
		a.styles.Status.Render(fmt.Sprintf(" · %s · %s", a.sourceName, a.ticker.Variant()))

	frame := a.styles.Frame
	if a.ticker.Hovered() || a.ticker.Dragging() {
		frame = a.styles.FocusedFrame
	}
	lines := []string{title, frame.Render(a.ticker.View())}
	if a.config.UI.ShowStatus {
		lines = append(lines, a.statusLine())
	}
	lines = append(lines, a.toastLine())
	if a.config.UI.ShowKeymapHints {
		lines = append(lines, a.help.View(a.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a *App) statusLine() string {
	state := "playing"
	switch {
	case a.ticker.Dragging():
		state = "dragging"
	case a.ticker.Paused():
		state = "paused"
	}
	res := a.ticker.Result()
	fit := "overflow"
	if res.Fits {
		fit = "fits"
	}
	st := a.ticker.State()
	parts := []string{
		a.styles.StatusKey.Render(state),
		fit,
		fmt.Sprintf("phase %s", st.Phase),
		fmt.Sprintf("iteration %d", st.Iteration),
	}
	if !a.ticker.CanBeAnimated() {
		parts = append(parts, a.styles.StatusWarn.Render("static"))
	}
	return a.styles.Status.Render(strings.Join(parts, " · "))
}

func (a *App) toastLine() string {
	if a.toast == nil {
		return ""
	}
	switch a.toast.Level {
	case messages.ToastError:
		return a.styles.Error.Render(a.toast.Message)
	case messages.ToastWarning:
		return a.styles.StatusWarn.Render(a.toast.Message)
	default:
		return a.styles.Info.Render(a.toast.Message)
	}
}

// Shutdown stops the source and the ticker. It is safe to call more than
// once.
func (a *App) Shutdown() {
	a.shutdown.Do(func() {
		a.cancel()
		if err := a.source.Close(); err != nil {
			logging.Warn("closing source: %v", err)
		}
		a.workers.Stop()
		a.ticker.Close()
		a.zone.Close()
	})
}
