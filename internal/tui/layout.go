package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"golang.org/x/net/html"

	"github.com/yumosx/loft/internal/dialog"
	"github.com/yumosx/loft/internal/dom"
)

const (
	minFrameWidth  = 12
	minFrameHeight = 5
)

// Rect is a cell rectangle.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

type hitArea struct {
	rect  Rect
	node  *html.Node
	label string
}

// frame is the on-screen geometry of one open dialog.
type frame struct {
	dialog  *dialog.Dialog
	z       int
	box     Rect
	header  Rect
	title   Rect
	tools   []hitArea
	body    Rect
	input   *hitArea
	footer  Rect
	buttons []hitArea
	resizer Rect
}

// layoutFrames computes the frames of the open dialogs of mount, lowest
// z-index first.
func layoutFrames(mount *dialog.Mount, winW, winH int) []frame {
	var frames []frame
	for _, d := range mount.Dialogs() {
		if d.IsOpened() {
			frames = append(frames, layoutFrame(d, winW, winH))
		}
	}
	slices.SortStableFunc(frames, func(a, b frame) int {
		return a.z - b.z
	})
	return frames
}

func layoutFrame(d *dialog.Dialog, winW, winH int) frame {
	f := frame{dialog: d, z: d.ZIndex()}

	x, y, _ := d.Position()
	w, h := d.Size()
	if d.IsMaximized() {
		x, y, w, h = 0, 0, winW, winH
	}
	w = max(w, minFrameWidth)
	h = max(h, minFrameHeight)
	f.box = Rect{X: x, Y: y, W: w, H: h}

	inner := w - 2
	f.header = Rect{X: x + 1, Y: y + 1, W: inner, H: 1}

	// Toolbar buttons are right aligned in the header.
	right := x + w - 1
	tools := dom.Children(d.Toolbar())
	for i := len(tools) - 1; i >= 0; i-- {
		label := toolLabel(tools[i])
		width := lipgloss.Width(label) + 2
		right -= width
		f.tools = append(f.tools, hitArea{
			rect:  Rect{X: right, Y: y + 1, W: width, H: 1},
			node:  tools[i],
			label: label,
		})
	}
	slices.Reverse(f.tools)
	f.title = Rect{X: x + 1, Y: y + 1, W: max(0, right-(x+1)), H: 1}

	bodyH := h - 3
	if dom.HasClass(d.Box(), "with_footer") {
		bodyH--
		f.footer = Rect{X: x + 1, Y: y + h - 2, W: inner, H: 1}
		left := x + 2
		for _, b := range dom.Children(d.Footer()) {
			label := buttonLabel(b)
			width := lipgloss.Width(label) + 2
			f.buttons = append(f.buttons, hitArea{
				rect:  Rect{X: left, Y: f.footer.Y, W: width, H: 1},
				node:  b,
				label: label,
			})
			left += width + 1
		}
	}
	f.body = Rect{X: x + 1, Y: y + 2, W: inner, H: max(0, bodyH)}

	if input := dom.First(d.Body(), "input"); input != nil {
		f.input = &hitArea{
			rect: Rect{X: f.body.X + 1, Y: f.body.Y + 1, W: max(0, f.body.W-2), H: 1},
			node: input,
		}
	}

	if d.Resizer() != nil {
		f.resizer = Rect{X: x + w - 1, Y: y + h - 1, W: 1, H: 1}
	}
	return f
}

// target returns the most specific chrome node under the cell.
func (f frame) target(x, y int) *html.Node {
	d := f.dialog
	switch {
	case f.resizer.Contains(x, y):
		return d.Resizer()
	case f.header.Contains(x, y):
		for _, t := range f.tools {
			if t.rect.Contains(x, y) {
				return t.node
			}
		}
		if f.title.Contains(x, y) {
			return d.Title()
		}
		return d.Header()
	case f.footer.Contains(x, y):
		for _, b := range f.buttons {
			if b.rect.Contains(x, y) {
				return b.node
			}
		}
		return d.Footer()
	case f.input != nil && f.input.rect.Contains(x, y):
		return f.input.node
	case f.body.Contains(x, y):
		return d.Body()
	}
	return d.Box()
}

// hitTest finds the topmost frame under the cell. Dialogs below an open
// modal dialog cannot be hit.
func hitTest(frames []frame, x, y int) (frame, *html.Node, bool) {
	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		if f.box.Contains(x, y) {
			return f, f.target(x, y), true
		}
		if f.dialog.Modal() {
			break
		}
	}
	return frame{}, nil, false
}

func toolLabel(n *html.Node) string {
	if s := strings.TrimSpace(dom.TextContent(dom.First(n, "i"))); s != "" {
		return s
	}
	return strings.TrimSpace(dom.TextContent(n))
}

func buttonLabel(n *html.Node) string {
	icon := strings.TrimSpace(dom.TextContent(dom.First(n, "i")))
	text := strings.TrimSpace(dom.TextContent(dom.First(n, "span")))
	switch {
	case icon == "":
		return text
	case text == "":
		return icon
	}
	return icon + " " + text
}
