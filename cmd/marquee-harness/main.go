package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/andyrewlee/marquee/internal/app"
	"github.com/andyrewlee/marquee/internal/logging"
	"github.com/andyrewlee/marquee/internal/perf"
)

type stats struct {
	avg time.Duration
	min time.Duration
	max time.Duration
	p50 time.Duration
	p95 time.Duration
	p99 time.Duration
}

func main() {
	variant := flag.String("variant", app.HarnessSmart, "ticker variant: smart or draggable")
	width := flag.Int("width", 80, "ticker width in columns")
	height := flag.Int("height", 1, "ticker height in rows")
	frames := flag.Int("frames", 600, "number of measured frames")
	warmup := flag.Int("warmup", 60, "warmup frames to ignore")
	speed := flag.Float64("speed", 0, "forward speed in cells per second (0 keeps the default)")
	direction := flag.String("direction", "", "left, right, top or bottom")
	autoFill := flag.Bool("auto-fill", false, "repeat content to fill the container")
	bounded := flag.Bool("bounded", false, "bounce between edges instead of wrapping")
	dragEvery := flag.Int("drag-every", 0, "start a scripted drag every N frames (0 disables)")
	text := flag.String("text", "", "ticker content")
	profile := flag.Bool("profile", false, "print per-stage timings from the ticker")
	logLevel := flag.String("log-level", "", "log to stderr at this level (debug, info, warn, error)")
	flag.Parse()

	if *logLevel != "" {
		level, err := logging.ParseLevel(*logLevel)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		logging.InitializeWriter(os.Stderr, level)
	}

	if *profile {
		perf.Enable(true)
		perf.SetLogInterval(0)
	}

	h, err := app.NewHarness(app.HarnessOptions{
		Variant:   *variant,
		Text:      *text,
		Width:     *width,
		Height:    *height,
		Speed:     *speed,
		Direction: *direction,
		AutoFill:  *autoFill,
		Bounded:   *bounded,
		DragEvery: *dragEvery,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "harness init failed: %v\n", err)
		os.Exit(1)
	}
	defer h.Close()

	totalFrames := *warmup + *frames
	if totalFrames <= 0 {
		fmt.Fprintln(os.Stderr, "frames + warmup must be > 0")
		os.Exit(1)
	}

	durations := make([]time.Duration, 0, *frames)
	startAll := time.Now()

	for i := 0; i < totalFrames; i++ {
		start := time.Now()
		h.Step(i)
		_ = h.Render()
		if i >= *warmup {
			durations = append(durations, time.Since(start))
		}
	}

	total := time.Since(startAll)
	s := summarize(durations)
	state := h.Ticker().State()
	fmt.Printf("variant=%s frames=%d warmup=%d size=%dx%d drag_every=%d\n",
		*variant, *frames, *warmup, *width, *height, *dragEvery)
	fmt.Printf("offset=%.2f phase=%s iteration=%d animatable=%t\n",
		state.Offset, state.Phase, state.Iteration, h.Ticker().CanBeAnimated())
	fmt.Printf("total=%s avg=%s p50=%s p95=%s p99=%s min=%s max=%s fps=%.2f\n",
		total, s.avg, s.p50, s.p95, s.p99, s.min, s.max, fps(durations))

	if *profile {
		stages, counters := perf.Snapshot()
		for _, st := range stages {
			fmt.Printf("stage=%s count=%d avg=%s p95=%s max=%s\n", st.Name, st.Count, st.Avg, st.P95, st.Max)
		}
		for _, c := range counters {
			fmt.Printf("counter=%s value=%d\n", c.Name, c.Value)
		}
	}
}

func summarize(durations []time.Duration) stats {
	if len(durations) == 0 {
		return stats{}
	}
	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range durations {
		total += d
	}
	return stats{
		avg: total / time.Duration(len(durations)),
		min: sorted[0],
		max: sorted[len(sorted)-1],
		p50: percentile(sorted, 0.50),
		p95: percentile(sorted, 0.95),
		p99: percentile(sorted, 0.99),
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	pos := int(float64(len(sorted)-1) * p)
	if pos < 0 {
		pos = 0
	}
	if pos >= len(sorted) {
		pos = len(sorted) - 1
	}
	return sorted[pos]
}

func fps(durations []time.Duration) float64 {
	var total time.Duration
	for _, d := range durations {
		total += d
	}
	if total <= 0 {
		return 0
	}
	return float64(len(durations)) / total.Seconds()
}
