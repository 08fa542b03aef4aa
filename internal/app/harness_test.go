package app

import (
	"testing"
)

func TestHarnessScrolls(t *testing.T) {
	h, err := NewHarness(HarnessOptions{Text: "0123456789", Width: 5, Speed: 50})
	if err != nil {
		t.Fatalf("harness init: %v", err)
	}
	defer h.Close()

	for i := 0; i < 10; i++ {
		h.Step(i)
	}
	if off := h.Ticker().State().Offset; off >= 0 {
		t.Fatalf("expected leftward motion, offset %v", off)
	}
	if h.Render() == "" {
		t.Fatalf("expected a rendered frame")
	}
}

func TestHarnessScriptedDrag(t *testing.T) {
	h, err := NewHarness(HarnessOptions{
		Variant:   HarnessDraggable,
		Text:      "0123456789",
		Width:     5,
		DragEvery: 20,
	})
	if err != nil {
		t.Fatalf("harness init: %v", err)
	}
	defer h.Close()

	h.Step(0)
	if !h.Ticker().Dragging() {
		t.Fatalf("expected drag to start")
	}
	for i := 1; i <= 11; i++ {
		h.Step(i)
	}
	if h.Ticker().Dragging() {
		t.Fatalf("expected drag to end")
	}
}

func TestHarnessRejectsBadOptions(t *testing.T) {
	if _, err := NewHarness(HarnessOptions{Variant: "wobbly"}); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
	if _, err := NewHarness(HarnessOptions{Direction: "sideways"}); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}
