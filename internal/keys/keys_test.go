package keys

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yumosx/loft/internal/dom"
)

func keydown(key string, which int, mods ...string) *dom.KeyboardEvent {
	ev := &dom.KeyboardEvent{Event: dom.Event{Type: "keydown"}, Key: key, Which: which}
	for _, m := range mods {
		switch m {
		case "alt":
			ev.AltKey = true
		case "ctrl":
			ev.CtrlKey = true
		case "shift":
			ev.ShiftKey = true
		case "meta":
			ev.MetaKey = true
		}
	}
	return ev
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   *dom.KeyboardEvent
		want string
	}{
		{"PlainCharacter", keydown("a", 65), "a"},
		{"CtrlShiftM", keydown("M", 77, "ctrl", "shift"), "m+ctrl+shift"},
		{"ShiftCtrlM", keydown("m", 77, "shift", "ctrl"), "m+ctrl+shift"},
		{"AllModifiers", keydown("k", 75, "meta", "shift", "ctrl", "alt"), "k+alt+ctrl+shift+meta"},
		{"Escape", keydown("Escape", 27), "esc"},
		{"FunctionKey", keydown("F5", 116, "alt"), "f5+alt"},
		{"Backspace", keydown("Backspace", 8), "backspace"},
		{"BareCtrl", keydown("Control", 17, "ctrl"), "ctrl"},
		{"CtrlIsNotDoubled", keydown("Control", 17, "ctrl", "shift"), "shift+ctrl"},
		{"NumpadDigit", keydown("7", 103, "ctrl"), "7+ctrl"},
		{"NumpadPlus", keydown("+", 107, "ctrl"), "plus+ctrl"},
		{"Space", keydown(" ", 32), "space"},
		{"UnknownCodeFallsBackToKey", keydown("é", 0), "é"},
		{"NoKeyUsesCode", keydown("", 'Q'), "q"},
		{"Comma", keydown(",", 188, "ctrl"), ",+ctrl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Normalize(tt.ev))
		})
	}
}

func TestNormalizeModifierOrderIndependent(t *testing.T) {
	t.Parallel()

	orders := [][]string{
		{"ctrl", "shift"},
		{"shift", "ctrl"},
	}
	var got []string
	for _, mods := range orders {
		got = append(got, Normalize(keydown("m", 77, mods...)))
	}
	require.Equal(t, got[0], got[1])
	require.Equal(t, NormalizeAliases("ctrl+shift+m"), got[0])
}

func TestNormalizeAliases(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"ctrl+shift+m":     "m+ctrl+shift",
		"cmd+shift+m":      "m+shift+meta",
		"Command+B":        "b+meta",
		"control + alt+x":  "x+alt+ctrl",
		"option+escape":    "esc+alt",
		"ctrl++":           "plus+ctrl",
		"+":                "plus",
		"shift+shift+tab":  "tab+shift",
		"win+delete":       "del+meta",
		"ctrl+enter":       "return+ctrl",
		"meta+shift+ctrl":  "meta+ctrl+shift",
		"m+ctrl+shift":     "m+ctrl+shift",
		"spacebar+ctrl":    "space+ctrl",
		"ctrl+ArrowLeft":   "left+ctrl",
		"ctrl+comma":       ",+ctrl",
	}
	for in, want := range tests {
		require.Equal(t, want, NormalizeAliases(in), in)
		require.Equal(t, want, NormalizeAliases(want), "canonical form must be stable for %q", want)
	}
}

func TestParseCombos(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"8+ctrl+shift", "8+shift+meta"}, ParseCombos("ctrl+shift+8, cmd+shift+8"))
	require.Equal(t, []string{"a+ctrl"}, ParseCombos("ctrl+a, Ctrl+A"))
	require.Empty(t, ParseCombos(""))
}

func TestName(t *testing.T) {
	t.Parallel()

	name, ok := Name(CodeEsc)
	require.True(t, ok)
	require.Equal(t, "esc", name)

	_, ok = Name(65)
	require.False(t, ok)
}

func TestCode(t *testing.T) {
	t.Parallel()

	tests := map[string]int{
		"m":       77,
		"M":       77,
		"7":       55,
		"esc":     CodeEsc,
		"Escape":  CodeEsc,
		"return":  CodeEnter,
		"enter":   CodeEnter,
		"-":       189,
		",":       188,
		"f5":      116,
		"ArrowUp": 38,
		"+":       107,
		" ":       CodeSpace,
	}
	for name, want := range tests {
		got, ok := Code(name)
		require.True(t, ok, name)
		require.Equal(t, want, got, name)
	}

	_, ok := Code("nonsense")
	require.False(t, ok)

	code, _ := Code("m")
	require.Equal(t, "m+ctrl", Normalize(keydown("m", code, "ctrl")))
}
