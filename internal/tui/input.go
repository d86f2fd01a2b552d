package tui

import (
	"fmt"
	"unicode"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/yumosx/loft/internal/dom"
	"github.com/yumosx/loft/internal/keys"
)

var namedKeys = map[rune]string{
	tea.KeyEscape:    "Escape",
	tea.KeyEnter:     "Enter",
	tea.KeyTab:       "Tab",
	tea.KeyBackspace: "Backspace",
	tea.KeyDelete:    "Delete",
	tea.KeyInsert:    "Insert",
	tea.KeyUp:        "ArrowUp",
	tea.KeyDown:      "ArrowDown",
	tea.KeyLeft:      "ArrowLeft",
	tea.KeyRight:     "ArrowRight",
	tea.KeyHome:      "Home",
	tea.KeyEnd:       "End",
	tea.KeyPgUp:      "PageUp",
	tea.KeyPgDown:    "PageDown",
	tea.KeySpace:     " ",
}

// keyboardEvent converts a terminal key press into a DOM style keydown with
// the legacy key code the hotkey layer normalizes.
func keyboardEvent(msg tea.KeyPressMsg) *dom.KeyboardEvent {
	k := msg.Key()
	ev := &dom.KeyboardEvent{
		Event:    dom.Event{Type: "keydown"},
		AltKey:   k.Mod.Contains(tea.ModAlt),
		CtrlKey:  k.Mod.Contains(tea.ModCtrl),
		ShiftKey: k.Mod.Contains(tea.ModShift),
		MetaKey:  k.Mod.Contains(tea.ModMeta) || k.Mod.Contains(tea.ModSuper),
	}

	switch {
	case namedKeys[k.Code] != "":
		ev.Key = namedKeys[k.Code]
	case k.Code >= tea.KeyF1 && k.Code <= tea.KeyF12:
		ev.Key = fmt.Sprintf("F%d", k.Code-tea.KeyF1+1)
	case k.Text != "":
		ev.Key = k.Text
	default:
		ev.Key = string(k.Code)
	}

	if code, ok := keys.Code(ev.Key); ok {
		ev.Which = code
	} else if unicode.IsPrint(k.Code) {
		ev.Which = int(unicode.ToUpper(k.Code))
	}
	// Shifted letters arrive as their upper case text.
	if unicode.IsUpper(k.Code) {
		ev.ShiftKey = true
	}
	return ev
}

// keyupFor builds the release matching a keydown. Terminals do not report
// releases unless asked, so one is synthesized after every press.
func keyupFor(down *dom.KeyboardEvent) *dom.KeyboardEvent {
	up := *down
	up.Event = dom.Event{Type: "keyup"}
	return &up
}

func pointerEvent(typ string, m tea.Mouse) *dom.PointerEvent {
	ev := dom.NewPointerEvent(typ, m.X, m.Y, nil)
	switch m.Button {
	case tea.MouseRight:
		ev.Button = 2
	case tea.MouseMiddle:
		ev.Button = 1
	}
	return ev
}
