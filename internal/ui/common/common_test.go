package common

import (
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

func TestHitRegion(t *testing.T) {
	h := HitRegion{ID: "ticker", X: 2, Y: 1, Width: 10, Height: 3}
	if !h.Contains(2, 1) || !h.Contains(11, 3) {
		t.Fatalf("expected corners inside")
	}
	if h.Contains(12, 1) || h.Contains(2, 4) || h.Contains(1, 1) {
		t.Fatalf("expected points outside")
	}
	if x, y := h.Local(5, 2); x != 3 || y != 1 {
		t.Fatalf("Local() = %d,%d", x, y)
	}
	if h.Empty() || !(HitRegion{Width: 4}).Empty() {
		t.Fatalf("unexpected Empty() results")
	}
}

func TestSafeCmdRecoversPanic(t *testing.T) {
	cmd := SafeCmd(func() tea.Msg { panic("boom") })
	msg := cmd()
	em, ok := msg.(ErrorMsg)
	if !ok {
		t.Fatalf("msg = %T, want ErrorMsg", msg)
	}
	if em.Context != "command" || !em.Logged {
		t.Fatalf("unexpected error msg %+v", em)
	}
}

func TestSafeCmdNil(t *testing.T) {
	if SafeCmd(nil) != nil || SafeBatch() != nil || SafeBatch(nil, nil) != nil {
		t.Fatalf("expected nil commands")
	}
	if SafeTick(time.Millisecond, nil) != nil {
		t.Fatalf("expected nil tick")
	}
}

func TestErrorMsgString(t *testing.T) {
	e := ErrorMsg{Err: errors.New("bad"), Context: "source"}
	if e.Error() != "source: bad" {
		t.Fatalf("Error() = %q", e.Error())
	}
	if (ErrorMsg{Err: errors.New("bad")}).Error() != "bad" {
		t.Fatalf("unexpected message without context")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("missing").ID != ThemeGruvbox {
		t.Fatalf("unknown theme should fall back to gruvbox")
	}
	seen := map[ThemeID]bool{}
	id := ThemeGruvbox
	for range AvailableThemes() {
		th := NextTheme(id)
		seen[th.ID] = true
		id = th.ID
	}
	if len(seen) != len(AvailableThemes()) {
		t.Fatalf("NextTheme visited %d of %d themes", len(seen), len(AvailableThemes()))
	}
	if GetTheme(ThemeDracula).Name != "Dracula" {
		t.Fatalf("unexpected dracula theme")
	}
	_ = StylesFor(GetTheme(ThemeDracula)).Frame.Render("x")
}
