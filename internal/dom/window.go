package dom

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// Window is the viewport dialogs are laid out in. It is a native event
// target: listeners registered through AddEventListener receive the events
// passed to Dispatch, in registration order, until one stops immediate
// propagation.
type Window struct {
	mu        sync.Mutex
	width     int
	height    int
	listeners map[string][]*listener
}

type listener struct {
	fn func(ev any)
}

// NewWindow creates a window with the given inner size.
func NewWindow(width, height int) *Window {
	return &Window{
		width:     width,
		height:    height,
		listeners: make(map[string][]*listener),
	}
}

// InnerWidth returns the viewport width.
func (w *Window) InnerWidth() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

// InnerHeight returns the viewport height.
func (w *Window) InnerHeight() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

// AddEventListener registers fn for name and returns a function removing it.
func (w *Window) AddEventListener(name string, fn func(ev any)) func() {
	l := &listener{fn: fn}
	w.mu.Lock()
	w.listeners[name] = append(w.listeners[name], l)
	w.mu.Unlock()
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.listeners[name] = slices.DeleteFunc(w.listeners[name], func(o *listener) bool {
			return o == l
		})
	}
}

// ListenerCount returns how many listeners are registered for name.
func (w *Window) ListenerCount(name string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.listeners[name])
}

// Dispatch delivers ev to the listeners of its type.
func (w *Window) Dispatch(ev Eventer) {
	base := ev.Base()
	w.mu.Lock()
	list := slices.Clone(w.listeners[base.Type])
	w.mu.Unlock()
	for _, l := range list {
		if base.ImmediatePropagationStopped() {
			return
		}
		l.fn(ev)
	}
}

// Resize changes the viewport size and dispatches a resize event.
func (w *Window) Resize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
	w.Dispatch(&ResizeEvent{Event: Event{Type: "resize"}, Width: width, Height: height})
}

// Document is a parsed html/head/body tree with its window.
type Document struct {
	Root   *html.Node
	Body   *html.Node
	Window *Window
}

// NewDocument creates an empty document whose window has the given size.
func NewDocument(width, height int) *Document {
	root, err := html.Parse(strings.NewReader("<html><head></head><body></body></html>"))
	if err != nil {
		// Parsing a constant document cannot fail.
		panic(err)
	}
	return &Document{
		Root:   root,
		Body:   First(root, "body"),
		Window: NewWindow(width, height),
	}
}
