package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyRenderer(t *testing.T) {
	t.Parallel()

	r := newBodyRenderer()
	lines := r.Render("<p>Hello <strong>world</strong></p><ul><li>one</li><li>two</li></ul>", 30, 10)
	require.NotEmpty(t, lines)

	text := ansi.Strip(strings.Join(lines, "\n"))
	assert.Contains(t, text, "Hello")
	assert.Contains(t, text, "world")
	assert.Contains(t, text, "two")
	for _, line := range lines {
		assert.LessOrEqual(t, lipgloss.Width(line), 30)
	}

	again := r.Render("<p>Hello <strong>world</strong></p><ul><li>one</li><li>two</li></ul>", 30, 10)
	assert.Equal(t, lines, again)
	assert.Equal(t, 1, r.Len())

	assert.Len(t, r.Render("<p>Hello <strong>world</strong></p><ul><li>one</li><li>two</li></ul>", 30, 1), 1)
	assert.Equal(t, 1, r.Len())

	r.Render("<p>Hello</p>", 20, 10)
	assert.Equal(t, 2, r.Len())
}

func TestBodyRendererEmpty(t *testing.T) {
	t.Parallel()

	r := newBodyRenderer()
	assert.Nil(t, r.Render("<p>x</p>", 0, 5))
	assert.Nil(t, r.Render("<p>x</p>", 5, 0))
	assert.Empty(t, r.Render("", 20, 5))
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	a := cacheKey("<p>x</p>", 10, "charm")
	assert.Equal(t, a, cacheKey("<p>x</p>", 10, "charm"))
	assert.NotEqual(t, a, cacheKey("<p>x</p>", 11, "charm"))
	assert.NotEqual(t, a, cacheKey("<p>x</p>", 10, "mono"))
	assert.NotEqual(t, a, cacheKey("<p>y</p>", 10, "charm"))
}
