package styles

import (
	"image/color"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	t.Parallel()

	m := NewManager("mono")
	assert.Equal(t, "mono", m.Current().Name)
	assert.Equal(t, []string{"charm", "mono"}, m.List())

	require.NoError(t, m.SetTheme("charm"))
	assert.Equal(t, "charm", m.Current().Name)
	require.Error(t, m.SetTheme("neon"))

	assert.Equal(t, "charm", NewManager("missing").Current().Name)
}

func TestDarken(t *testing.T) {
	t.Parallel()

	white := color.RGBA{255, 255, 255, 255}
	half, _ := colorful.MakeColor(Darken(white, 50))
	full, _ := colorful.MakeColor(Darken(white, 100))
	none, _ := colorful.MakeColor(Darken(white, 0))

	l, _, _ := half.Lab()
	assert.InDelta(t, 0.5, l, 0.01)
	assert.Equal(t, "#000000", full.Hex())
	assert.Equal(t, "#ffffff", none.Hex())

	lighter, _ := colorful.MakeColor(Lighten(color.RGBA{0, 0, 0, 255}, 100))
	assert.Equal(t, "#ffffff", lighter.Hex())
}

func TestBlendColors(t *testing.T) {
	t.Parallel()

	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}

	ramp := blendColors(5, red, blue)
	require.Len(t, ramp, 5)
	assert.Equal(t, "#ff0000", colorToString(ramp[0]))
	assert.Equal(t, "#0000ff", colorToString(ramp[4]))

	assert.Nil(t, blendColors(3, red))
	assert.Len(t, blendColors(4, red, blue, red), 4)
}

func TestApplyForegroundGrad(t *testing.T) {
	t.Parallel()

	out := ApplyForegroundGrad(lipgloss.NewStyle(), "héllo", color.White, color.Black)
	assert.Equal(t, "héllo", ansi.Strip(out))
	assert.Empty(t, ApplyForegroundGrad(lipgloss.NewStyle(), "", color.White, color.Black))
}

func TestStylesAreCached(t *testing.T) {
	t.Parallel()

	theme := NewCharmTheme()
	assert.Same(t, theme.S(), theme.S())
	assert.NotNil(t, theme.S().Markdown.Document.Color)
}
