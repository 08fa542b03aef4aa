// Package perf collects frame timings and counters for the ticker. Collection
// is off unless MARQUEE_PROFILE is set or Enable is called; summaries go to
// the log every MARQUEE_PROFILE_INTERVAL_MS.
package perf

import (
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyrewlee/marquee/internal/logging"
)

const (
	sampleWindow      = 256
	defaultIntervalMs = 5000
)

// Sample names recorded by the ticker.
const (
	FrameCallbacks = "ticker.frame"
	ViewRender     = "ticker.view"
	Remeasure      = "ticker.measure"
	Frames         = "ticker.frames"
)

type series struct {
	count   int64
	total   time.Duration
	min     time.Duration
	max     time.Duration
	samples [sampleWindow]time.Duration
	next    int
	full    bool
}

func (s *series) add(d time.Duration) {
	s.count++
	s.total += d
	if s.count == 1 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	s.samples[s.next] = d
	s.next++
	if s.next == sampleWindow {
		s.next = 0
		s.full = true
	}
}

func (s *series) window() []time.Duration {
	if s.full {
		return s.samples[:]
	}
	return s.samples[:s.next]
}

// StatSnapshot summarises one timing series since the last snapshot.
type StatSnapshot struct {
	Name  string
	Count int64
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
	P95   time.Duration
}

// CounterSnapshot is a counter value since the last snapshot.
type CounterSnapshot struct {
	Name  string
	Value int64
}

var (
	enabled     atomic.Bool
	logInterval atomic.Int64
	lastLog     atomic.Int64

	mu       sync.Mutex
	stats    = map[string]*series{}
	counters = map[string]int64{}
)

func init() {
	enabled.Store(envEnabled())
	logInterval.Store(int64(envInterval()))
}

// Enabled reports whether collection is on.
func Enabled() bool { return enabled.Load() }

// Enable turns collection on or off and returns the previous setting.
func Enable(on bool) bool { return enabled.Swap(on) }

// SetLogInterval changes how often summaries are logged; zero disables them.
func SetLogInterval(d time.Duration) { logInterval.Store(int64(d)) }

// Time starts a measurement and returns the function that records it.
func Time(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() { Record(name, time.Since(start)) }
}

// Record adds a duration sample.
func Record(name string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	s, ok := stats[name]
	if !ok {
		s = &series{}
		stats[name] = s
	}
	s.add(d)
	mu.Unlock()
	maybeLog()
}

// Count adds delta to a named counter.
func Count(name string, delta int64) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	counters[name] += delta
	mu.Unlock()
	maybeLog()
}

// Snapshot returns everything recorded since the previous snapshot, sorted
// by name, and resets the collectors.
func Snapshot() ([]StatSnapshot, []CounterSnapshot) {
	mu.Lock()
	taken, takenCounters := stats, counters
	stats = map[string]*series{}
	counters = map[string]int64{}
	mu.Unlock()

	out := make([]StatSnapshot, 0, len(taken))
	for name, s := range taken {
		if s.count == 0 {
			continue
		}
		out = append(out, StatSnapshot{
			Name:  name,
			Count: s.count,
			Avg:   s.total / time.Duration(s.count),
			Min:   s.min,
			Max:   s.max,
			P95:   p95(s.window()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	outCounters := make([]CounterSnapshot, 0, len(takenCounters))
	for name, v := range takenCounters {
		if v != 0 {
			outCounters = append(outCounters, CounterSnapshot{Name: name, Value: v})
		}
	}
	sort.Slice(outCounters, func(i, j int) bool { return outCounters[i].Name < outCounters[j].Name })
	return out, outCounters
}

// Flush logs a summary now.
func Flush(reason string) {
	if !enabled.Load() {
		return
	}
	prefix := "PERF SUMMARY"
	if reason = strings.TrimSpace(reason); reason != "" {
		prefix += " " + reason
	}
	logSnapshot(prefix)
}

func maybeLog() {
	interval := time.Duration(logInterval.Load())
	if interval <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < interval {
		return
	}
	if !lastLog.CompareAndSwap(last, now) {
		return
	}
	logSnapshot("PERF")
}

func logSnapshot(prefix string) {
	taken, takenCounters := Snapshot()
	for _, s := range taken {
		logging.Info("%s %s count=%d avg=%s p95=%s min=%s max=%s",
			prefix, s.Name, s.Count, s.Avg, s.P95, s.Min, s.Max)
	}
	for _, c := range takenCounters {
		logging.Info("%s %s count=%d", prefix, c.Name, c.Value)
	}
}

func p95(samples []time.Duration) time.Duration {
	n := len(samples)
	if n == 0 {
		return 0
	}
	sorted := make([]time.Duration, n)
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	pos := int(math.Ceil(0.95*float64(n))) - 1
	if pos < 0 {
		pos = 0
	}
	return sorted[pos]
}

func envEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("MARQUEE_PROFILE"))) {
	case "", "0", "false", "no":
		return false
	}
	return true
}

func envInterval() time.Duration {
	ms := defaultIntervalMs
	if raw := strings.TrimSpace(os.Getenv("MARQUEE_PROFILE_INTERVAL_MS")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			ms = v
		}
	}
	return time.Duration(ms) * time.Millisecond
}
