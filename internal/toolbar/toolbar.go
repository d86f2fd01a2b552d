// Package toolbar renders named controls into a node and wires their clicks
// to the control's action.
package toolbar

import (
	"html"
	"log/slog"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/yumosx/loft/internal/csync"
	"github.com/yumosx/loft/internal/dom"
	"github.com/yumosx/loft/internal/events"
	"github.com/yumosx/loft/internal/i18n"
	"github.com/yumosx/loft/internal/icons"
)

// Control is a toolbar button definition. Exec receives the view the
// toolbar was built for.
type Control struct {
	Icon  string
	Label string
	Exec  func(view any) error
}

var controls = csync.NewMap[string, Control]()

// Register makes a control available under name, replacing any previous
// definition.
func Register(name string, c Control) {
	controls.Set(name, c)
}

// Lookup returns the control registered under name.
func Lookup(name string) (Control, bool) {
	return controls.Get(name)
}

// Builder builds toolbars.
type Builder struct {
	catalog   *i18n.Catalog
	textIcons bool
}

// NewBuilder creates a builder translating labels with catalog. With
// textIcons set, buttons show their label instead of the icon glyph.
func NewBuilder(catalog *i18n.Catalog, textIcons bool) *Builder {
	if catalog == nil {
		catalog = i18n.Default()
	}
	return &Builder{catalog: catalog, textIcons: textIcons}
}

// Build appends one button per known control name to node. Clicks on a
// button run the control against view and stop the click. Unknown names
// are skipped.
func (b *Builder) Build(buttons []string, node *xhtml.Node, view any, bus *events.Bus) []*xhtml.Node {
	var out []*xhtml.Node
	for _, name := range buttons {
		c, ok := Lookup(name)
		if !ok {
			slog.Debug("Unknown toolbar control", "name", name)
			continue
		}
		btn := dom.Build(b.markup(name, c))
		dom.Append(node, btn)
		out = append(out, btn)

		bus.On(btn, "click", func(args ...any) error {
			if len(args) > 0 {
				if ev, ok := args[0].(dom.Eventer); ok {
					ev.Base().StopPropagation()
					ev.Base().PreventDefault()
				}
			}
			if c.Exec == nil {
				return nil
			}
			return c.Exec(view)
		})
	}
	return out
}

func (b *Builder) markup(name string, c Control) string {
	label := b.catalog.T(c.Label)
	var sb strings.Builder
	sb.WriteString(`<a class="loft_toolbar_button loft_toolbar_button_`)
	sb.WriteString(html.EscapeString(strings.ReplaceAll(name, ".", "_")))
	sb.WriteString(`" data-control="`)
	sb.WriteString(html.EscapeString(name))
	sb.WriteString(`" title="`)
	sb.WriteString(html.EscapeString(label))
	sb.WriteString(`">`)
	if glyph := icons.Markup(c.Icon); glyph != "" && !b.textIcons {
		sb.WriteString(glyph)
	} else {
		sb.WriteString(html.EscapeString(label))
	}
	sb.WriteString(`</a>`)
	return sb.String()
}
