package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"

	"github.com/yumosx/loft/internal/keys"
)

type KeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding
	Close    key.Binding

	// Configured hotkeys, shown in the help line only. They are dispatched
	// by the editor, not matched here.
	commands []key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next button"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous button"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "press"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close dialog"),
		),
	}
}

// helpCommands lists the commands worth advertising, in this order.
var helpCommands = []string{"newDialog", "palette", "about", "rename", "copy", "quit"}

// WithBindings returns a copy of k advertising the given command bindings.
func (k KeyMap) WithBindings(bindings map[string][]string) KeyMap {
	k.commands = nil
	for _, command := range helpCommands {
		combos := bindings[command]
		if len(combos) == 0 {
			continue
		}
		k.commands = append(k.commands, key.NewBinding(
			key.WithKeys(combos...),
			key.WithHelp(DisplayCombo(combos[0]), command),
		))
	}
	return k
}

// DisplayCombo writes a canonical combo the way people type it, modifiers
// first: "n+ctrl" becomes "ctrl+n".
func DisplayCombo(combo string) string {
	parts := strings.Split(combo, "+")
	if len(parts) < 2 {
		return combo
	}
	var mods, rest []string
	for _, p := range parts {
		if keys.IsModifier(p) && !slices.Contains(mods, p) {
			mods = append(mods, p)
			continue
		}
		rest = append(rest, p)
	}
	return strings.Join(append(mods, rest...), "+")
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return append([]key.Binding{k.Close, k.Next}, k.commands...)
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Activate, k.Close},
		k.commands,
	}
}
