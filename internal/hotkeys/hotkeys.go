// Package hotkeys binds key combos to editor commands and intercepts the
// key events that trigger them.
package hotkeys

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/yumosx/loft/internal/dom"
	"github.com/yumosx/loft/internal/events"
	"github.com/yumosx/loft/internal/keys"
)

// Commander executes a named command.
type Commander interface {
	ExecCommand(name string) error
}

// Binding maps one canonical combo to a command.
type Binding struct {
	Combo   string
	Command string
}

// DefaultCommandToHotkeys is the built-in binding table.
func DefaultCommandToHotkeys() map[string][]string {
	return map[string][]string{
		"removeFormat":        {"ctrl+shift+m", "cmd+shift+m"},
		"insertOrderedList":   {"ctrl+shift+7", "cmd+shift+7"},
		"insertUnorderedList": {"ctrl+shift+8, cmd+shift+8"},
		"selectall":           {"ctrl+a", "cmd+a"},
	}
}

// Dispatcher owns the combo handlers registered on an editor bus and the
// keydown/keyup interception.
type Dispatcher struct {
	bus       *events.Bus
	commander Commander
	bindings  []Binding
	attached  bool
	isHotkey  bool
}

// New creates a dispatcher and registers the bindings of commandToHotkeys.
// Combo strings may carry several comma separated variants.
func New(bus *events.Bus, commander Commander, commandToHotkeys map[string][]string) *Dispatcher {
	d := &Dispatcher{
		bus:       bus,
		commander: commander,
	}
	d.registerAll(commandToHotkeys)
	return d
}

func (d *Dispatcher) registerAll(commandToHotkeys map[string][]string) {
	commands := make([]string, 0, len(commandToHotkeys))
	for name := range commandToHotkeys {
		commands = append(commands, name)
	}
	// Map order is random, keep handler registration deterministic.
	slices.Sort(commands)
	for _, name := range commands {
		if hotkeys := commandToHotkeys[name]; len(hotkeys) > 0 {
			d.Register(name, hotkeys...)
		}
	}
}

// Register binds every combo to command.
func (d *Dispatcher) Register(command string, hotkeys ...string) {
	for _, raw := range hotkeys {
		for _, combo := range keys.ParseCombos(raw) {
			b := Binding{Combo: combo, Command: command}
			if slices.Contains(d.bindings, b) {
				continue
			}
			d.bindings = append(d.bindings, b)
			d.bus.On(nil, combo, d.execHandler(command), events.WithOwner(d))
		}
	}
}

func (d *Dispatcher) execHandler(command string) events.Handler {
	return func(...any) error {
		if err := d.commander.ExecCommand(command); err != nil {
			slog.Error("Hotkey command failed", "command", command, "error", err)
		}
		return events.ErrVeto
	}
}

// Rebind drops every registered binding and installs a new table.
func (d *Dispatcher) Rebind(commandToHotkeys map[string][]string) {
	for _, b := range d.bindings {
		d.bus.OffOwner(d, b.Combo)
	}
	d.bindings = nil
	d.registerAll(commandToHotkeys)
}

// Bindings returns the registered bindings sorted by command then combo.
func (d *Dispatcher) Bindings() []Binding {
	out := slices.Clone(d.bindings)
	slices.SortFunc(out, func(a, b Binding) int {
		if c := strings.Compare(a.Command, b.Command); c != 0 {
			return c
		}
		return strings.Compare(a.Combo, b.Combo)
	})
	return out
}

// CombosFor returns the combos bound to command.
func (d *Dispatcher) CombosFor(command string) []string {
	var out []string
	for _, b := range d.bindings {
		if b.Command == command {
			out = append(out, b.Combo)
		}
	}
	return out
}

// Attach installs the keydown and keyup interceptors ahead of every other
// handler of the bus. Calling it twice has no effect.
func (d *Dispatcher) Attach() {
	if d.attached {
		return
	}
	d.attached = true
	d.bus.
		On(nil, "keydown", d.onKeyDown, events.OnTop(), events.WithOwner(d)).
		On(nil, "keyup", d.onKeyUp, events.OnTop(), events.WithOwner(d))
}

// Detach removes the interceptors and the combo handlers.
func (d *Dispatcher) Detach() {
	if !d.attached {
		return
	}
	d.attached = false
	d.bus.OffOwner(d, "")
	d.bindings = nil
}

// IsHotkey reports whether the key currently held down triggered a command.
func (d *Dispatcher) IsHotkey() bool {
	return d.isHotkey
}

func (d *Dispatcher) onKeyDown(args ...any) error {
	ev := keyboardEvent(args)
	if ev == nil {
		return nil
	}
	combo := keys.Normalize(ev)
	if combo == "" {
		return nil
	}
	if errors.Is(d.bus.Fire(nil, combo, ev.Type), events.ErrVeto) {
		d.isHotkey = true
		ev.StopPropagation()
		d.bus.StopPropagation("keydown")
		slog.Debug("Hotkey consumed", "combo", combo)
		return events.ErrVeto
	}
	return nil
}

func (d *Dispatcher) onKeyUp(args ...any) error {
	if !d.isHotkey {
		return nil
	}
	d.isHotkey = false
	if ev := keyboardEvent(args); ev != nil {
		ev.StopPropagation()
	}
	d.bus.StopPropagation("keyup")
	return events.ErrVeto
}

func keyboardEvent(args []any) *dom.KeyboardEvent {
	if len(args) == 0 {
		return nil
	}
	ev, _ := args[0].(*dom.KeyboardEvent)
	return ev
}
