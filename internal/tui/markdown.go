package tui

import (
	"fmt"
	"log/slog"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/charmbracelet/glamour/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/zeebo/xxh3"

	"github.com/yumosx/loft/internal/csync"
	"github.com/yumosx/loft/internal/tui/styles"
)

// bodyRenderer turns dialog body HTML into terminal lines. Results are
// cached by a hash of the markup, the width and the theme.
type bodyRenderer struct {
	converter *md.Converter
	cache     *csync.Map[string, []string]
}

func newBodyRenderer() *bodyRenderer {
	return &bodyRenderer{
		converter: md.NewConverter("", true, nil),
		cache:     csync.NewMap[string, []string](),
	}
}

func cacheKey(markup string, width int, theme string) string {
	h := xxh3.New()
	fmt.Fprintf(h, "%d-%s-", width, theme)
	h.Write([]byte(markup))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Render returns at most height lines of at most width cells.
func (r *bodyRenderer) Render(markup string, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	t := styles.CurrentTheme()
	key := cacheKey(markup, width, t.Name)
	lines, ok := r.cache.Get(key)
	if !ok {
		lines = r.render(markup, width, t)
		r.cache.Set(key, lines)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return lines
}

func (r *bodyRenderer) render(markup string, width int, t *styles.Theme) []string {
	markdown, err := r.converter.ConvertString(markup)
	if err != nil {
		slog.Error("Error converting dialog body", "error", err)
		markdown = markup
	}
	if strings.TrimSpace(markdown) == "" {
		return nil
	}

	out := markdown
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(t.S().Markdown),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, err := renderer.Render(markdown); err == nil {
			out = rendered
		}
	}

	var lines []string
	for line := range strings.SplitSeq(strings.Trim(out, "\n"), "\n") {
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}
	return lines
}

// Len reports the number of cached renders.
func (r *bodyRenderer) Len() int {
	return r.cache.Len()
}
