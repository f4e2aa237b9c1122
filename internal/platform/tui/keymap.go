package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/nisha-go/internal/core"
)

// defaultBindings lists the keys bound to each runner action.
var defaultBindings = []struct {
	action core.Action
	keys   []string
}{
	{core.ActionLeft, []string{"a", "left", "h"}},
	{core.ActionRight, []string{"d", "right", "l"}},
	{core.ActionConfirm, []string{" ", "enter"}},
	{core.ActionPause, []string{"esc", "p"}},
	{core.ActionRestart, []string{"r"}},
	{core.ActionAbort, []string{"x"}},
	{core.ActionToggleSound, []string{"m"}},
	{core.ActionQuit, []string{"q", "ctrl+c"}},
}

// KeyMapper translates Bubble Tea key messages to runner actions.
type KeyMapper struct {
	bindings map[string]core.Action
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{bindings: make(map[string]core.Action)}
	for _, b := range defaultBindings {
		for _, k := range b.keys {
			km.bindings[k] = b.action
		}
	}
	return km
}

// MapKey returns the action bound to msg, ActionNone when unbound, and
// whether the key asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action = km.bindings[msg.String()]
	return action, action == core.ActionQuit
}
