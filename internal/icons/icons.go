// Package icons resolves named icons to the glyphs drawn in toolbar and
// footer buttons.
package icons

import "strings"

var glyphs = map[string]string{
	"cancel":   "✕",
	"check":    "✓",
	"fullsize": "⛶",
	"shrink":   "▣",
	"bin":      "🗑",
	"pencil":   "✎",
	"info":     "ⓘ",
	"keyboard": "⌨",
	"search":   "⌕",
	"copy":     "⧉",
	"plus":     "+",
}

// Get returns the glyph for name, or an empty string when the icon is
// unknown. Lookups ignore case.
func Get(name string) string {
	return glyphs[strings.ToLower(name)]
}

// Has reports whether name is a known icon.
func Has(name string) bool {
	_, ok := glyphs[strings.ToLower(name)]
	return ok
}

// Markup returns the inline markup of an icon as embedded in buttons.
func Markup(name string) string {
	g := Get(name)
	if g == "" {
		return ""
	}
	return `<i class="loft_icon loft_icon_` + strings.ToLower(name) + `">` + g + `</i>`
}
