package keymap

import (
	"testing"

	"github.com/andyrewlee/marquee/internal/config"
)

func TestNewUsesDefaults(t *testing.T) {
	km := New(config.KeyMapConfig{})
	if got := PrimaryKey(km.PlayPause); got != "space" {
		t.Fatalf("PlayPause primary = %q, want space", got)
	}
	if got := km.Quit.Help().Key; got != "q/ctrl+c" {
		t.Fatalf("Quit help key = %q", got)
	}
}

func TestNewAppliesOverrides(t *testing.T) {
	km := New(config.KeyMapConfig{Bindings: map[string][]string{
		"recalc": {"R", "f5"},
	}})
	if got := PrimaryKey(km.Recalc); got != "R" {
		t.Fatalf("Recalc primary = %q, want R", got)
	}
	if got := km.Recalc.Help().Key; got != "R/f5" {
		t.Fatalf("Recalc help key = %q", got)
	}
	if got := PrimaryKey(km.Reset); got != "0" {
		t.Fatalf("Reset should keep its default, got %q", got)
	}
}

func TestEveryActionHasABinding(t *testing.T) {
	km := New(config.KeyMapConfig{})
	for _, info := range ActionInfos() {
		if len(BindingForAction(km, info.Action).Keys()) == 0 {
			t.Fatalf("action %s has no keys", info.Action)
		}
	}
	if len(BindingForAction(km, Action("nope")).Keys()) != 0 {
		t.Fatalf("unknown action should have an empty binding")
	}
}

func TestSequenceHint(t *testing.T) {
	km := New(config.KeyMapConfig{})
	if got := SequenceHint(km.PlayPause, km.Reset); got != "space/0" {
		t.Fatalf("SequenceHint = %q", got)
	}
}

func TestHelpGroups(t *testing.T) {
	km := New(config.KeyMapConfig{})
	if len(km.ShortHelp()) != 4 {
		t.Fatalf("ShortHelp len = %d", len(km.ShortHelp()))
	}
	n := 0
	for _, col := range km.FullHelp() {
		n += len(col)
	}
	if n != len(ActionInfos()) {
		t.Fatalf("FullHelp covers %d bindings, want %d", n, len(ActionInfos()))
	}
}
