package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumosx/loft/internal/dialog"
	"github.com/yumosx/loft/internal/dom"
	"github.com/yumosx/loft/internal/editor"
)

func newTestEditor(t *testing.T) *editor.Editor {
	t.Helper()
	e := editor.New(editor.Options{Width: 100, Height: 40})
	require.NoError(t, e.Init())
	t.Cleanup(e.Destruct)
	return e
}

func TestLayoutFrame(t *testing.T) {
	t.Parallel()

	e := newTestEditor(t)
	d := e.NewDialog()
	d.Open(dialog.HTML("<p>body</p>"), dialog.HTML("Title"), false, false)
	x, y, ok := d.Position()
	require.True(t, ok)

	f := layoutFrame(d, 100, 40)
	assert.Equal(t, Rect{X: x, Y: y, W: 48, H: 12}, f.box)
	assert.Equal(t, Rect{X: x + 1, Y: y + 1, W: 46, H: 1}, f.header)
	assert.Equal(t, Rect{X: x + 1, Y: y + 2, W: 46, H: 9}, f.body)
	assert.Equal(t, Rect{X: x + 47, Y: y + 11, W: 1, H: 1}, f.resizer)
	assert.Zero(t, f.footer)
	assert.Nil(t, f.input)

	require.Len(t, f.tools, 1)
	tool := f.tools[0]
	assert.Equal(t, x+47, tool.rect.X+tool.rect.W)
	assert.Equal(t, f.title.X+f.title.W, tool.rect.X)

	assert.Same(t, d.Title(), f.target(f.title.X, f.title.Y))
	assert.Same(t, tool.node, f.target(tool.rect.X, tool.rect.Y))
	assert.Same(t, d.Resizer(), f.target(f.resizer.X, f.resizer.Y))
	assert.Same(t, d.Body(), f.target(f.body.X+3, f.body.Y+3))
	assert.Same(t, d.Box(), f.target(x, y))
}

func TestLayoutFrameWithFooter(t *testing.T) {
	t.Parallel()

	e := newTestEditor(t)
	d := e.Prompt("Name", "Ask", nil, "")
	x, y, _ := d.Position()

	f := layoutFrame(d, 100, 40)
	assert.Equal(t, 8, f.body.H)
	assert.Equal(t, Rect{X: x + 1, Y: y + 10, W: 46, H: 1}, f.footer)

	require.Len(t, f.buttons, 2)
	assert.Equal(t, x+2, f.buttons[0].rect.X)
	assert.Equal(t, f.buttons[0].rect.X+f.buttons[0].rect.W+1, f.buttons[1].rect.X)
	assert.Contains(t, f.buttons[1].label, "Cancel")

	require.NotNil(t, f.input)
	assert.Same(t, dom.First(d.Body(), "input"), f.input.node)
	assert.Equal(t, f.body.Y+1, f.input.rect.Y)
	assert.Same(t, f.input.node, f.target(f.input.rect.X, f.input.rect.Y))
	assert.Same(t, f.buttons[0].node, f.target(f.buttons[0].rect.X, f.footer.Y))
}

func TestLayoutFrameMaximized(t *testing.T) {
	t.Parallel()

	e := newTestEditor(t)
	d := e.NewDialog()
	d.Open(dialog.HTML("x"), dialog.HTML("t"), false, false)
	d.Maximization(true)

	f := layoutFrame(d, 80, 20)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 80, H: 20}, f.box)
}

func TestHitTest(t *testing.T) {
	t.Parallel()

	e := newTestEditor(t)
	lower := e.NewDialog()
	lower.Open(dialog.HTML("lower"), dialog.HTML("lower"), false, false)
	upper := e.NewDialog()
	upper.Open(dialog.HTML("upper"), dialog.HTML("upper"), false, false)

	frames := layoutFrames(e.Mount(), 100, 40)
	require.Len(t, frames, 2)
	assert.Same(t, lower, frames[0].dialog)
	assert.Same(t, upper, frames[1].dialog)

	// Both are centered, so the topmost wins.
	x, y, _ := upper.Position()
	f, node, ok := hitTest(frames, x+5, y+5)
	require.True(t, ok)
	assert.Same(t, upper, f.dialog)
	assert.Same(t, upper.Body(), node)

	_, _, ok = hitTest(frames, 0, 0)
	assert.False(t, ok)

	// Move the lower one aside, then cover the screen with a modal.
	lower.SetPosition(0, 0)
	upper.Close()
	e.Alert("blocking", "", nil)
	frames = layoutFrames(e.Mount(), 100, 40)
	require.Len(t, frames, 2)
	_, _, ok = hitTest(frames, 1, 1)
	assert.False(t, ok)
}

func TestLabels(t *testing.T) {
	t.Parallel()

	btn := dom.Build(`<a><i>✓</i><span>Ok</span></a>`)
	assert.Equal(t, "✓ Ok", buttonLabel(btn))
	assert.Equal(t, "Ok", buttonLabel(dom.Build(`<a><span>Ok</span></a>`)))

	assert.Equal(t, "×", toolLabel(dom.Build(`<a title="Close"><i>×</i></a>`)))
	assert.Equal(t, "Close", toolLabel(dom.Build(`<a>Close</a>`)))
}
