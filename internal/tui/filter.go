package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

const motionInterval = 15 * time.Millisecond

var motion struct {
	sync.Mutex
	last time.Time
}

// MouseEventFilter drops motion events that arrive faster than a drag can
// be redrawn. Presses and releases always pass.
func MouseEventFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	return throttleMotion(msg, time.Now())
}

func throttleMotion(msg tea.Msg, now time.Time) tea.Msg {
	motion.Lock()
	defer motion.Unlock()
	if now.Sub(motion.last) < motionInterval {
		return nil
	}
	motion.last = now
	return msg
}
