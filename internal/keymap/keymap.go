package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/andyrewlee/marquee/internal/config"
)

// Action identifies a configurable keybinding.
type Action string

const (
	ActionPlayPause Action = "play_pause"
	ActionReset     Action = "reset"
	ActionSnap      Action = "snap_to_start"
	ActionRecalc    Action = "recalc"
	ActionCopy      Action = "copy"
	ActionTheme     Action = "theme_next"
	ActionHelp      Action = "help"
	ActionQuit      Action = "quit"
)

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// KeyMap defines all keybindings of a ticker host.
type KeyMap struct {
	PlayPause key.Binding
	Reset     key.Binding
	Snap      key.Binding
	Recalc    key.Binding
	Copy      key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var defaults = []bindingDef{
	{action: ActionPlayPause, keys: []string{"space", "p"}, desc: "play/pause"},
	{action: ActionReset, keys: []string{"0"}, desc: "reset"},
	{action: ActionSnap, keys: []string{"home"}, desc: "snap to start"},
	{action: ActionRecalc, keys: []string{"r"}, desc: "recalc"},
	{action: ActionCopy, keys: []string{"y"}, desc: "copy"},
	{action: ActionTheme, keys: []string{"t"}, desc: "theme"},
	{action: ActionHelp, keys: []string{"?"}, desc: "help"},
	{action: ActionQuit, keys: []string{"q", "ctrl+c"}, desc: "quit"},
}

// New builds a keymap from defaults, applying any user overrides.
func New(cfg config.KeyMapConfig) KeyMap {
	var km KeyMap
	for _, def := range defaults {
		*km.binding(def.action) = bindingFromDef(cfg, def)
	}
	return km
}

func (km *KeyMap) binding(action Action) *key.Binding {
	switch action {
	case ActionPlayPause:
		return &km.PlayPause
	case ActionReset:
		return &km.Reset
	case ActionSnap:
		return &km.Snap
	case ActionRecalc:
		return &km.Recalc
	case ActionCopy:
		return &km.Copy
	case ActionTheme:
		return &km.Theme
	case ActionHelp:
		return &km.Help
	case ActionQuit:
		return &km.Quit
	default:
		return nil
	}
}

// ShortHelp implements help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.PlayPause, km.Reset, km.Help, km.Quit}
}

// FullHelp implements help.KeyMap.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.PlayPause, km.Reset, km.Snap, km.Recalc},
		{km.Copy, km.Theme, km.Help, km.Quit},
	}
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok {
		keys = def.keys
	}
	helpKey := strings.Join(keys, "/")
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, def.desc),
	)
}

// PrimaryKey returns the first key in the binding, if present.
func PrimaryKey(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// BindingHint returns a single key hint for a binding, falling back to help text.
func BindingHint(binding key.Binding) string {
	key := PrimaryKey(binding)
	if key == "" {
		return binding.Help().Key
	}
	return key
}

// SequenceHint joins multiple bindings with slashes using their primary keys.
func SequenceHint(bindings ...key.Binding) string {
	var keys []string
	for _, binding := range bindings {
		key := BindingHint(binding)
		if key != "" {
			keys = append(keys, key)
		}
	}
	return strings.Join(keys, "/")
}

// ActionInfo describes a configurable action for UI display.
type ActionInfo struct {
	Action Action
	Desc   string
	Group  string
}

// ActionInfos returns the ordered list of actions for UI display.
func ActionInfos() []ActionInfo {
	return []ActionInfo{
		{Action: ActionPlayPause, Desc: "Play or pause", Group: "Ticker"},
		{Action: ActionReset, Desc: "Reset to start", Group: "Ticker"},
		{Action: ActionSnap, Desc: "Snap to start", Group: "Ticker"},
		{Action: ActionRecalc, Desc: "Measure again", Group: "Ticker"},
		{Action: ActionCopy, Desc: "Copy content", Group: "Ticker"},
		{Action: ActionTheme, Desc: "Next theme", Group: "Global"},
		{Action: ActionHelp, Desc: "Toggle help", Group: "Global"},
		{Action: ActionQuit, Desc: "Quit", Group: "Global"},
	}
}

// BindingForAction returns the binding for the given action.
func BindingForAction(km KeyMap, action Action) key.Binding {
	if b := km.binding(action); b != nil {
		return *b
	}
	return key.Binding{}
}
