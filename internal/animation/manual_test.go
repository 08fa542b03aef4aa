package animation

import (
	"testing"
	"time"
)

func TestManualSchedulerTimersFireInOrder(t *testing.T) {
	m := NewManualScheduler(epoch)
	var got []int
	m.AfterFunc(30*time.Millisecond, func() { got = append(got, 2) })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, 1) })
	cancelled := m.AfterFunc(20*time.Millisecond, func() { got = append(got, 99) })
	m.CancelTimer(cancelled)

	m.Advance(50 * time.Millisecond)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("fired %v, want [1 2]", got)
	}
	if m.PendingTimers() != 0 {
		t.Fatalf("pending timers = %d", m.PendingTimers())
	}
}

func TestManualSchedulerFramesRunOnce(t *testing.T) {
	m := NewManualScheduler(epoch)
	calls := 0
	var at time.Time
	m.RequestFrame(func(now time.Time) {
		calls++
		at = now
	})
	m.Frame()
	m.Frame()
	if calls != 1 {
		t.Fatalf("frame ran %d times, want 1", calls)
	}
	if want := epoch.Add(DefaultFrameInterval); !at.Equal(want) {
		t.Fatalf("frame time = %v, want %v", at, want)
	}
}

func TestManualSchedulerCancelDuringBatch(t *testing.T) {
	m := NewManualScheduler(epoch)
	ran := false
	var second Handle
	m.RequestFrame(func(time.Time) { m.CancelFrame(second) })
	second = m.RequestFrame(func(time.Time) { ran = true })
	m.Frame()
	if ran {
		t.Fatalf("cancelled frame ran")
	}
}

func TestManualSchedulerRunUntilLimit(t *testing.T) {
	m := NewManualScheduler(epoch)
	if m.RunUntil(func() bool { return false }, 100*time.Millisecond) {
		t.Fatalf("RunUntil reported success")
	}
	if m.Now().Sub(epoch) < 100*time.Millisecond {
		t.Fatalf("clock did not reach the limit")
	}
}
