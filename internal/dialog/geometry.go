package dialog

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/yumosx/loft/internal/dom"
)

// movedThreshold is how far, in cells, an explicit position may sit from the
// centered one before the dialog stops following viewport resizes.
const movedThreshold = 100

// Content is an ordered list of nodes placed into a dialog slot.
type Content []*html.Node

// HTML builds content from markup fragments. Plain text becomes a text node.
func HTML(fragments ...string) Content {
	out := make(Content, 0, len(fragments))
	for _, f := range fragments {
		out = append(out, dom.Build(f))
	}
	return out
}

// Nodes wraps existing nodes as content.
func Nodes(nodes ...*html.Node) Content {
	return Content(nodes)
}

// setElements makes the children of root exactly the given nodes. Nodes
// already in root keep their place; the others are appended.
func setElements(root *html.Node, content Content) {
	for _, n := range content {
		if n != nil && n.Parent != root {
			dom.Append(root, n)
		}
	}
	for _, c := range dom.Children(root) {
		if !slices.Contains(content, c) {
			root.RemoveChild(c)
		}
	}
}

// SetTitle replaces the title slot.
func (d *Dialog) SetTitle(content Content) {
	setElements(d.title, content)
}

// SetContent replaces the body slot.
func (d *Dialog) SetContent(content Content) {
	setElements(d.body, content)
}

// SetFooter replaces the footer slot.
func (d *Dialog) SetFooter(content Content) {
	setElements(d.footer, content)
	dom.ToggleClass(d.box, "with_footer", len(content) > 0)
}

// Length is a width or height: a number of cells or a raw CSS length such
// as "50%" or "30px". The zero Length leaves a dimension unchanged.
type Length struct {
	cells int
	raw   string
}

// Px returns a length in cells.
func Px(n int) Length {
	return Length{cells: n}
}

// Raw returns a length from a CSS value.
func Raw(v string) Length {
	return Length{raw: strings.TrimSpace(v)}
}

// IsZero reports whether l carries no usable value.
func (l Length) IsZero() bool {
	return l.raw == "" && l.cells < 1
}

func (l Length) String() string {
	if l.raw != "" {
		return l.raw
	}
	return strconv.Itoa(l.cells) + "px"
}

// SetSize sets the width and height of the window. A zero Length leaves
// that dimension as it is.
func (d *Dialog) SetSize(w, h Length) {
	if !w.IsZero() {
		dom.SetStyle(d.box, "width", w.String())
	}
	if !h.IsZero() {
		dom.SetStyle(d.box, "height", h.String())
	}
}

// Size returns the resolved width and height in cells. Percentages resolve
// against the window, unset or unparsable values fall back to the
// configured defaults.
func (d *Dialog) Size() (width, height int) {
	width = resolveLength(d.box, "width", d.window.InnerWidth(), d.options.Width, DefaultOptions().Width)
	height = resolveLength(d.box, "height", d.window.InnerHeight(), d.options.Height, DefaultOptions().Height)
	return width, height
}

func resolveLength(n *html.Node, prop string, viewport, configured, fallback int) int {
	if v, ok := dom.Style(n, prop); ok {
		if pct, isPct := strings.CutSuffix(v, "%"); isPct {
			if p, err := strconv.ParseFloat(pct, 64); err == nil {
				return int(float64(viewport) * p / 100)
			}
		} else if i, ok := dom.StyleInt(n, prop); ok {
			return i
		}
	}
	if configured > 0 {
		return configured
	}
	return fallback
}

// Position returns the top left corner of the window, and false when the
// dialog has never been placed.
func (d *Dialog) Position() (x, y int, ok bool) {
	x, okX := dom.StyleInt(d.box, "left")
	y, okY := dom.StyleInt(d.box, "top")
	return x, y, okX && okY
}

// Moved reports whether an explicit position put the dialog far enough from
// the center to stop automatic re-centering.
func (d *Dialog) Moved() bool {
	return d.moved
}

func (d *Dialog) center() (left, top int) {
	w, h := d.Size()
	return d.window.InnerWidth()/2 - w/2, d.window.InnerHeight()/2 - h/2
}

// SetPosition places the top left corner of the window and remembers the
// offset for later opens.
func (d *Dialog) SetPosition(x, y int) {
	left, top := d.center()
	d.offsetX, d.offsetY = x, y
	d.hasOffset = true
	d.moved = abs(x-left) > movedThreshold || abs(y-top) > movedThreshold
	d.place(x, y)
}

// Center places the window in the middle of the viewport without recording
// an offset.
func (d *Dialog) Center() {
	d.place(d.center())
}

func (d *Dialog) place(x, y int) {
	dom.SetStyle(d.box, "left", strconv.Itoa(x)+"px")
	dom.SetStyle(d.box, "top", strconv.Itoa(y)+"px")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ZIndex returns the current z-index, 0 when none is set.
func (d *Dialog) ZIndex() int {
	z, _ := d.zIndex()
	return z
}

func (d *Dialog) zIndex() (int, bool) {
	return dom.StyleInt(d.container, "z-index")
}

func (d *Dialog) setZIndex(z int) {
	dom.SetStyle(d.container, "z-index", strconv.Itoa(z))
}

// MaxZIndexDialog returns the open dialog of the mount with the highest
// z-index. On equal values the one found last wins. When no dialog is open
// it returns d itself.
func (d *Dialog) MaxZIndexDialog() *Dialog {
	if top, ok := d.mount.Top(); ok {
		return top
	}
	return d
}

// SetMaxZIndex raises d above every dialog of its mount, open or not.
func (d *Dialog) SetMaxZIndex() {
	maxZ, _ := d.mount.maxZIndex(nil)
	d.setZIndex(maxZ + 1)
}

// Maximization switches the fullsize state and returns it. The mount node
// and its parent are marked as well so surrounding chrome can react.
func (d *Dialog) Maximization(on bool) bool {
	dom.ToggleClass(d.container, "loft_dialog_box-fullsize", on)
	if mountNode := d.mount.Node(); mountNode != nil {
		dom.ToggleClass(mountNode, "loft_fullsize_box", on)
		dom.ToggleClass(mountNode.Parent, "loft_fullsize_box", on)
	}
	d.selfMaximized = on
	return on
}

// ToggleFullSize flips the fullsize state.
func (d *Dialog) ToggleFullSize() bool {
	return d.Maximization(!d.IsMaximized())
}

// IsMaximized reports whether the dialog is fullsize.
func (d *Dialog) IsMaximized() bool {
	return dom.HasClass(d.container, "loft_dialog_box-fullsize")
}
