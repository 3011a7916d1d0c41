package app

import (
	"slices"

	"github.com/san-kum/termsaver/internal/ui"
)

// Action is something the user can ask the app to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionNextPattern
	ActionPrevPattern
	ActionNextPreset
	ActionPreset
	ActionNextTheme
	ActionSpeedUp
	ActionSpeedDown
	ActionPause
	ActionReset
	ActionHelp
	ActionStatus
)

var actionNames = map[Action]string{
	ActionNone:        "none",
	ActionQuit:        "quit",
	ActionNextPattern: "next pattern",
	ActionPrevPattern: "previous pattern",
	ActionNextPreset:  "next preset",
	ActionPreset:      "preset 1-9",
	ActionNextTheme:   "next theme",
	ActionSpeedUp:     "faster",
	ActionSpeedDown:   "slower",
	ActionPause:       "pause / resume",
	ActionReset:       "reset pattern",
	ActionHelp:        "toggle help",
	ActionStatus:      "toggle status bar",
}

func (a Action) String() string { return actionNames[a] }

// Keys are named the way bubbletea prints them; the tcell frontend
// translates its events to the same names.
var keymap = map[string]Action{
	"q":      ActionQuit,
	"esc":    ActionQuit,
	"ctrl+c": ActionQuit,
	"right":  ActionNextPattern,
	"n":      ActionNextPattern,
	"left":   ActionPrevPattern,
	"p":      ActionPrevPattern,
	"tab":    ActionNextPreset,
	"t":      ActionNextTheme,
	"+":      ActionSpeedUp,
	"=":      ActionSpeedUp,
	"-":      ActionSpeedDown,
	" ":      ActionPause,
	"space":  ActionPause,
	"r":      ActionReset,
	"?":      ActionHelp,
	"h":      ActionHelp,
	"s":      ActionStatus,
}

// Lookup maps a key name to its action and argument.
func Lookup(key string) (Action, int) {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return ActionPreset, int(key[0] - '0')
	}
	return keymap[key], 0
}

// Bindings lists the key table shown by the help overlay, one row per
// action.
func Bindings() []ui.KeyHelp {
	byAction := make(map[Action][]string)
	for k, a := range keymap {
		if k == " " {
			continue
		}
		byAction[a] = append(byAction[a], k)
	}
	byAction[ActionPreset] = []string{"1-9"}

	out := make([]ui.KeyHelp, 0, len(byAction))
	for a := ActionQuit; a <= ActionStatus; a++ {
		keys := byAction[a]
		slices.Sort(keys)
		label := ""
		for i, k := range keys {
			if i > 0 {
				label += "/"
			}
			label += k
		}
		out = append(out, ui.KeyHelp{Key: label, Desc: a.String()})
	}
	return out
}
