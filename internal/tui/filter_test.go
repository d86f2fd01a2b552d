package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestMouseEventFilter(t *testing.T) {
	click := tea.MouseClickMsg{X: 1, Y: 1}
	assert.Equal(t, click, MouseEventFilter(nil, click))

	now := time.Now().Add(time.Hour)
	move := tea.MouseMotionMsg{X: 2, Y: 2}
	assert.Equal(t, move, throttleMotion(move, now))
	assert.Nil(t, throttleMotion(move, now.Add(time.Millisecond)))
	assert.Equal(t, move, throttleMotion(move, now.Add(motionInterval)))
}
