package dom

import "golang.org/x/net/html"

// Event carries the propagation state shared by every DOM-style event.
type Event struct {
	Type   string
	Target *html.Node

	propagationStopped bool
	immediateStopped   bool
	defaultPrevented   bool
}

// StopPropagation keeps the event from reaching other listeners up the tree.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// StopImmediatePropagation also skips the remaining listeners of the current
// target.
func (e *Event) StopImmediatePropagation() {
	e.propagationStopped = true
	e.immediateStopped = true
}

// PreventDefault cancels the host's default action.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

func (e *Event) ImmediatePropagationStopped() bool {
	return e.immediateStopped
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Base returns the embedded event.
func (e *Event) Base() *Event {
	return e
}

// Eventer is implemented by every event type of this package.
type Eventer interface {
	Base() *Event
}

// PointerEvent is a mouse down, move or up.
type PointerEvent struct {
	Event
	ClientX, ClientY int
	Button           int
}

// NewPointerEvent creates a pointer event at the given client coordinates.
func NewPointerEvent(typ string, x, y int, target *html.Node) *PointerEvent {
	return &PointerEvent{
		Event:   Event{Type: typ, Target: target},
		ClientX: x,
		ClientY: y,
	}
}

// KeyboardEvent is a key press or release, modelled after the legacy
// browser event: Which holds the numeric key code and Key the produced
// character or key name.
type KeyboardEvent struct {
	Event
	Key      string
	Which    int
	AltKey   bool
	CtrlKey  bool
	ShiftKey bool
	MetaKey  bool
}

// Modifier reports the state of a modifier by name.
func (e *KeyboardEvent) Modifier(name string) bool {
	switch name {
	case "alt":
		return e.AltKey
	case "ctrl":
		return e.CtrlKey
	case "shift":
		return e.ShiftKey
	case "meta":
		return e.MetaKey
	}
	return false
}

// ResizeEvent reports new viewport dimensions.
type ResizeEvent struct {
	Event
	Width, Height int
}
