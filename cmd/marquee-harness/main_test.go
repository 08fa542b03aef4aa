package main

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	got := summarize([]time.Duration{4, 1, 3, 2})
	if got.min != 1 || got.max != 4 {
		t.Fatalf("min/max = %v/%v", got.min, got.max)
	}
	if got.avg != 2 {
		t.Fatalf("avg = %v", got.avg)
	}
	if got.p50 != 2 {
		t.Fatalf("p50 = %v", got.p50)
	}
	if (summarize(nil) != stats{}) {
		t.Fatalf("expected zero stats for no samples")
	}
}

func TestPercentileBounds(t *testing.T) {
	sorted := []time.Duration{1, 2, 3}
	if percentile(sorted, -1) != 1 || percentile(sorted, 2) != 3 {
		t.Fatalf("percentile out of range not clamped")
	}
	if percentile(nil, 0.5) != 0 {
		t.Fatalf("empty percentile should be zero")
	}
}

func TestFPS(t *testing.T) {
	if fps(nil) != 0 {
		t.Fatalf("fps of nothing should be zero")
	}
	if got := fps([]time.Duration{time.Second / 2, time.Second / 2}); got != 2 {
		t.Fatalf("fps = %v", got)
	}
}
