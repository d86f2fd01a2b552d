// Package keys turns keyboard events and configured hotkey strings into
// canonical combo strings such as "m+ctrl+shift".
//
// A combo lists the base key first, followed by whichever of alt, ctrl,
// shift and meta are held, always in that order, joined with "+".
package keys

import (
	"slices"
	"strings"

	"github.com/yumosx/loft/internal/dom"
)

// Legacy key codes used by the dialog layer.
const (
	CodeBackspace = 8
	CodeTab       = 9
	CodeEnter     = 13
	CodeEsc       = 27
	CodeSpace     = 32
)

// Modifiers in canonical order.
var Modifiers = []string{"alt", "ctrl", "shift", "meta"}

// special maps legacy key codes to key names.
var special = map[int]string{
	8:   "backspace",
	9:   "tab",
	10:  "return",
	13:  "return",
	16:  "shift",
	17:  "ctrl",
	18:  "alt",
	19:  "pause",
	20:  "capslock",
	27:  "esc",
	32:  "space",
	33:  "pageup",
	34:  "pagedown",
	35:  "end",
	36:  "home",
	37:  "left",
	38:  "up",
	39:  "right",
	40:  "down",
	45:  "insert",
	46:  "del",
	59:  ";",
	61:  "=",
	91:  "meta",
	96:  "0",
	97:  "1",
	98:  "2",
	99:  "3",
	100: "4",
	101: "5",
	102: "6",
	103: "7",
	104: "8",
	105: "9",
	106: "*",
	107: "+",
	109: "-",
	110: ".",
	111: "/",
	112: "f1",
	113: "f2",
	114: "f3",
	115: "f4",
	116: "f5",
	117: "f6",
	118: "f7",
	119: "f8",
	120: "f9",
	121: "f10",
	122: "f11",
	123: "f12",
	144: "numlock",
	145: "scroll",
	173: "-",
	186: ";",
	187: "=",
	188: ",",
	189: "-",
	190: ".",
	191: "/",
	192: "`",
	219: "[",
	220: "\\",
	221: "]",
	222: "'",
}

// aliases folds platform and spelling variants onto the names produced by
// the code table.
var aliases = map[string]string{
	"add":        "plus",
	"+":          "plus",
	"break":      "pause",
	"cmd":        "meta",
	"command":    "meta",
	"win":        "meta",
	"windows":    "meta",
	"super":      "meta",
	"mod":        "meta",
	"ctl":        "ctrl",
	"control":    "ctrl",
	"opt":        "alt",
	"option":     "alt",
	"escape":     "esc",
	"delete":     "del",
	"enter":      "return",
	"ins":        "insert",
	"arrowup":    "up",
	"arrowdown":  "down",
	"arrowleft":  "left",
	"arrowright": "right",
	"pgup":       "pageup",
	"pgdown":     "pagedown",
	"spacebar":   "space",
	" ":          "space",
	"comma":      ",",
}

// codes is the reverse of special. Where several codes share a name the
// highest one wins, which picks the main keyboard over the numpad.
var codes = func() map[string]int {
	out := make(map[string]int, len(special))
	for code, name := range special {
		if code > out[name] {
			out[name] = code
		}
	}
	return out
}()

// Code returns the legacy key code for a key name as produced by Normalize.
// Letters and digits map to their upper case ASCII code.
func Code(name string) (int, bool) {
	name = strings.ToLower(name)
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	if len(name) == 1 {
		switch c := name[0]; {
		case c >= 'a' && c <= 'z':
			return int(c - 'a' + 'A'), true
		case c >= '0' && c <= '9':
			return int(c), true
		}
	}
	if name == "plus" {
		return 107, true
	}
	code, ok := codes[name]
	return code, ok
}

// Name returns the key name for a legacy key code.
func Name(code int) (string, bool) {
	name, ok := special[code]
	return name, ok
}

// IsModifier reports whether name is one of alt, ctrl, shift or meta.
func IsModifier(name string) bool {
	return slices.Contains(Modifiers, name)
}

// Normalize returns the canonical combo for a key event.
func Normalize(ev *dom.KeyboardEvent) string {
	name, isSpecial := special[ev.Which]
	base := name
	if !isSpecial {
		base = strings.ToLower(ev.Key)
		if base == "" && ev.Which > 0 {
			base = strings.ToLower(string(rune(ev.Which)))
		}
	}
	if alias, ok := aliases[base]; ok {
		base = alias
	}

	parts := []string{base}
	for _, mod := range Modifiers {
		if ev.Modifier(mod) && name != mod {
			parts = append(parts, mod)
		}
	}
	return NormalizeAliases(strings.Join(parts, "+"))
}

// NormalizeAliases canonicalises a combo string written by hand or produced
// by Normalize: aliases are folded, duplicates dropped and tokens reordered.
func NormalizeAliases(combo string) string {
	switch {
	case combo == "+":
		combo = "add"
	case strings.HasPrefix(combo, "++"):
		combo = "add+" + combo[2:]
	}
	combo = strings.ReplaceAll(combo, "++", "+add")

	var bases []string
	mods := make(map[string]bool, len(Modifiers))
	for token := range strings.SplitSeq(combo, "+") {
		if token != " " {
			token = strings.TrimSpace(token)
		}
		token = strings.ToLower(token)
		if token == "" {
			continue
		}
		if alias, ok := aliases[token]; ok {
			token = alias
		}
		if IsModifier(token) {
			mods[token] = true
			continue
		}
		if !slices.Contains(bases, token) {
			bases = append(bases, token)
		}
	}

	// A combo made only of modifiers uses the last of them, in canonical
	// order, as its base key.
	if len(bases) == 0 {
		for i := len(Modifiers) - 1; i >= 0; i-- {
			if mods[Modifiers[i]] {
				bases = append(bases, Modifiers[i])
				delete(mods, Modifiers[i])
				break
			}
		}
	}

	parts := bases
	for _, mod := range Modifiers {
		if mods[mod] {
			parts = append(parts, mod)
		}
	}
	return strings.Join(parts, "+")
}

// ParseCombos splits a configured hotkey string that may list several combos
// separated by ", " and normalizes each one.
func ParseCombos(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ", ") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		combo := NormalizeAliases(part)
		if combo != "" && !slices.Contains(out, combo) {
			out = append(out, combo)
		}
	}
	return out
}
