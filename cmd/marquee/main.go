//go:build !windows

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/term"

	"github.com/andyrewlee/marquee/internal/app"
	"github.com/andyrewlee/marquee/internal/config"
	"github.com/andyrewlee/marquee/internal/logging"
	"github.com/andyrewlee/marquee/internal/perf"
	"github.com/andyrewlee/marquee/internal/safego"
	"github.com/andyrewlee/marquee/internal/source"
	"github.com/andyrewlee/marquee/internal/supervisor"
	"github.com/andyrewlee/marquee/internal/ui/common"
	"github.com/andyrewlee/marquee/internal/ui/ticker"
)

// Version info, set at build time with -ldflags -X.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var errVersion = errors.New("version requested")

type options struct {
	configPath string
	text       string
	file       string
	command    string
	keep       int
	draggable  bool
	logLevel   string
	restart    supervisor.RestartPolicy
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("marquee", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "config file (JSON or YAML); defaults to ~/.marquee/config.json")
	fs.StringVar(&opts.text, "text", "", "static text to scroll")
	fs.StringVar(&opts.file, "file", "", "file to scroll; reloaded when it changes")
	fs.StringVar(&opts.command, "cmd", "", "shell command whose output is scrolled")
	fs.IntVar(&opts.keep, "keep", 1, "number of recent output lines kept from --cmd")
	fs.BoolVar(&opts.draggable, "draggable", false, "use the draggable ticker")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	restart := fs.String("restart", "on-error", "rerun a --cmd or --file source: never, on-error, always")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if *showVersion {
		return opts, errVersion
	}

	set := 0
	for _, s := range []string{opts.text, opts.file, opts.command} {
		if s != "" {
			set++
		}
	}
	if set > 1 {
		return opts, errors.New("--text, --file and --cmd are mutually exclusive")
	}
	if opts.text == "" && fs.NArg() > 0 {
		if set > 0 {
			return opts, errors.New("positional text given together with a source flag")
		}
		opts.text = strings.Join(fs.Args(), " ")
	}
	policy, err := supervisor.ParseRestartPolicy(*restart)
	if err != nil {
		return opts, err
	}
	if opts.file != "" || opts.command != "" {
		opts.restart = policy
	}
	if opts.keep < 1 {
		return opts, fmt.Errorf("--keep must be at least 1, got %d", opts.keep)
	}
	return opts, nil
}

func (o options) source() (source.Source, string, error) {
	switch {
	case o.file != "":
		f, err := source.NewFile(o.file)
		if err != nil {
			return nil, "", err
		}
		return f, "file", nil
	case o.command != "":
		return source.NewCommand(o.command, "", o.keep), "cmd", nil
	case o.text != "":
		return source.Static(o.text), "text", nil
	default:
		return source.Static(defaultText), "demo", nil
	}
}

const defaultText = "marquee scrolls text that does not fit. Hover to pause, space to toggle, r to remeasure, q to quit."

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, errVersion) {
		fmt.Printf("marquee %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "marquee: %v\n", err)
		os.Exit(2)
	}

	if !shouldLaunchTUI(term.IsTerminal(os.Stdin.Fd()), term.IsTerminal(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "marquee: stdin and stdout must be a terminal")
		os.Exit(1)
	}
	os.Exit(runTUI(opts))
}

func shouldLaunchTUI(stdinIsTTY, stdoutIsTTY bool) bool {
	return stdinIsTTY && stdoutIsTTY
}

func runTUI(opts options) int {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	levelName := cfg.LogLevel
	if opts.logLevel != "" {
		levelName = opts.logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = logging.LevelInfo
	}
	if err := logging.Initialize(cfg.Paths.LogsRoot, level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	logging.Info("Starting marquee %s", version)
	startSignalDebug()
	startPprof()

	src, name, err := opts.source()
	if err != nil {
		logging.Error("Failed to open source: %v", err)
		fmt.Fprintf(os.Stderr, "Error opening source: %v\n", err)
		return 1
	}

	variant := ticker.Smart
	if opts.draggable {
		variant = ticker.Draggable
	}
	a, err := app.New(cfg, app.Options{
		Variant:    variant,
		Source:     src,
		SourceName: name,
		Restart:    opts.restart,
	})
	if err != nil {
		src.Close()
		logging.Error("Failed to initialize app: %v", err)
		fmt.Fprintf(os.Stderr, "Error initializing app: %v\n", err)
		return 1
	}

	p := tea.NewProgram(
		a,
		tea.WithFilter(mouseEventFilter),
	)
	a.SetMsgSender(p.Send)
	safego.SetPanicHandler(func(name string, r any, _ []byte) {
		p.Send(common.ErrorMsg{Err: fmt.Errorf("panic: %v", r), Context: name, Logged: true})
	})

	if _, err := p.Run(); err != nil {
		logging.Error("App exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		if path := logging.GetLogPath(); path != "" {
			fmt.Fprintf(os.Stderr, "See %s for details.\n", path)
		}
		a.Shutdown()
		return 1
	}
	a.Shutdown()
	perf.Flush("exit")

	logging.Info("marquee shutdown complete")
	return 0
}

var (
	lastMouseMotionEvent   time.Time
	lastMouseX, lastMouseY int
)

// mouseEventFilter drops repeated motion reports at the same cell. Motion
// that moves the pointer always passes so drags stay exact.
func mouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	if msg, ok := msg.(tea.MouseMotionMsg); ok {
		if msg.X != lastMouseX || msg.Y != lastMouseY {
			lastMouseX = msg.X
			lastMouseY = msg.Y
			lastMouseMotionEvent = time.Now()
			return msg
		}
		now := time.Now()
		if now.Sub(lastMouseMotionEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseMotionEvent = now
	}
	return msg
}

func startPprof() {
	raw := strings.TrimSpace(os.Getenv("MARQUEE_PPROF"))
	if raw == "" {
		return
	}
	switch strings.ToLower(raw) {
	case "0", "false", "no":
		return
	}

	addr := raw
	if raw == "1" || strings.ToLower(raw) == "true" {
		addr = "127.0.0.1:6060"
	} else if _, err := strconv.Atoi(raw); err == nil {
		addr = "127.0.0.1:" + raw
	}

	safego.Go("pprof", func() {
		logging.Info("pprof listening on %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			logging.Warn("pprof server stopped: %v", err)
		}
	})
}

// startSignalDebug dumps goroutines to the log on SIGUSR1 in dev builds or
// when MARQUEE_DEBUG_SIGNALS is set.
func startSignalDebug() {
	if version != "dev" && strings.TrimSpace(os.Getenv("MARQUEE_DEBUG_SIGNALS")) == "" {
		return
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)
	safego.Go("signal-debug", func() {
		for range ch {
			var buf bytes.Buffer
			if err := pprof.Lookup("goroutine").WriteTo(&buf, 2); err != nil {
				logging.Warn("Failed to write goroutine dump: %v", err)
				continue
			}
			logging.Warn("GOROUTINE DUMP\n%s", buf.String())
		}
	})
}
