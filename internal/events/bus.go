// Package events provides the string-keyed event bus shared by an editor
// host and the dialogs it owns.
//
// Handlers are scoped to a target (any comparable value, nil meaning the bus
// itself) and an event name. Several names may be given at once separated by
// spaces, so a single Fire of "endResize endMove" reaches the handlers of
// both names. Handlers run in registration order, except those registered
// with OnTop which run first. A handler returning ErrVeto stops the remaining
// handlers and makes Fire return ErrVeto.
package events

import (
	"errors"
	"slices"
	"strings"
	"sync"
)

// ErrVeto is returned by a handler to cancel the event and short-circuit the
// handlers registered after it.
var ErrVeto = errors.New("events: veto")

// Handler handles an event. The arguments are whatever the caller of Fire
// passed.
type Handler func(args ...any) error

// Native is implemented by targets that deliver their own events, such as a
// window. When a handler is registered for a Native target the bus attaches
// a bridge listener that re-fires the native event on the bus.
type Native interface {
	AddEventListener(name string, fn func(ev any)) (remove func())
}

type key struct {
	target any
	name   string
}

type entry struct {
	handler Handler
	owner   any
}

type frame struct {
	name    string
	stopped bool
}

// Bus is an event bus. The zero value is not usable, use New.
type Bus struct {
	mu         sync.Mutex
	handlers   map[key][]entry
	bridges    map[key]func()
	frames     []*frame
	destructed bool
}

// OnOption configures a registration.
type OnOption func(*onConfig)

type onConfig struct {
	top   bool
	owner any
}

// OnTop places the handler before every handler already registered for the
// same target and name.
func OnTop() OnOption {
	return func(c *onConfig) {
		c.top = true
	}
}

// WithOwner tags the handler with owner so OffOwner can remove it without
// touching handlers other owners registered under the same target and name.
// owner must be comparable.
func WithOwner(owner any) OnOption {
	return func(c *onConfig) {
		c.owner = owner
	}
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		handlers: make(map[key][]entry),
		bridges:  make(map[key]func()),
	}
}

func splitNames(names string) []string {
	return strings.Fields(names)
}

// On registers h for each space separated name on target. It returns the
// bus so registrations can be chained.
func (b *Bus) On(target any, names string, h Handler, opts ...OnOption) *Bus {
	if h == nil {
		return b
	}
	var cfg onConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	b.mu.Lock()
	if b.destructed {
		b.mu.Unlock()
		return b
	}
	var toBridge []string
	for _, name := range splitNames(names) {
		k := key{target: target, name: name}
		e := entry{handler: h, owner: cfg.owner}
		if cfg.top {
			b.handlers[k] = append([]entry{e}, b.handlers[k]...)
		} else {
			b.handlers[k] = append(b.handlers[k], e)
		}
		if _, ok := target.(Native); ok {
			if _, bridged := b.bridges[k]; !bridged {
				b.bridges[k] = func() {}
				toBridge = append(toBridge, name)
			}
		}
	}
	b.mu.Unlock()

	// Native listeners are attached outside the lock, the target may call
	// back into the bus synchronously.
	if native, ok := target.(Native); ok {
		for _, name := range toBridge {
			remove := native.AddEventListener(name, func(ev any) {
				_ = b.Fire(target, name, ev)
			})
			b.mu.Lock()
			b.bridges[key{target: target, name: name}] = remove
			b.mu.Unlock()
		}
	}
	return b
}

// Off removes every handler registered for target under the given names. An
// empty names string removes all handlers of target.
func (b *Bus) Off(target any, names string) *Bus {
	b.mu.Lock()
	var removers []func()
	if names == "" {
		for k := range b.handlers {
			if k.target == target {
				delete(b.handlers, k)
			}
		}
		for k, remove := range b.bridges {
			if k.target == target {
				removers = append(removers, remove)
				delete(b.bridges, k)
			}
		}
	} else {
		for _, name := range splitNames(names) {
			k := key{target: target, name: name}
			delete(b.handlers, k)
			if remove, ok := b.bridges[k]; ok {
				removers = append(removers, remove)
				delete(b.bridges, k)
			}
		}
	}
	b.mu.Unlock()

	for _, remove := range removers {
		remove()
	}
	return b
}

// OffOwner removes the handlers registered with WithOwner(owner), on any
// target, under the given names. An empty names string removes all of them.
// Native bridges are detached once no handler is left for their name.
func (b *Bus) OffOwner(owner any, names string) *Bus {
	if owner == nil {
		return b
	}
	only := splitNames(names)

	b.mu.Lock()
	var removers []func()
	for k, list := range b.handlers {
		if len(only) > 0 && !slices.Contains(only, k.name) {
			continue
		}
		kept := slices.DeleteFunc(slices.Clone(list), func(e entry) bool {
			return e.owner == owner
		})
		if len(kept) == len(list) {
			continue
		}
		if len(kept) > 0 {
			b.handlers[k] = kept
			continue
		}
		delete(b.handlers, k)
		if remove, ok := b.bridges[k]; ok {
			removers = append(removers, remove)
			delete(b.bridges, k)
		}
	}
	b.mu.Unlock()

	for _, remove := range removers {
		remove()
	}
	return b
}

// Has reports whether any handler is registered for target and name.
func (b *Bus) Has(target any, name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[key{target: target, name: name}]) > 0
}

// Fire invokes the handlers for each space separated name on target. It
// returns ErrVeto as soon as a handler vetoes. Other handler errors do not
// stop the dispatch and are joined into the returned error.
func (b *Bus) Fire(target any, names string, args ...any) error {
	var errs []error
	for _, name := range splitNames(names) {
		err := b.fire(target, name, args)
		if errors.Is(err, ErrVeto) {
			return ErrVeto
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) fire(target any, name string, args []any) error {
	b.mu.Lock()
	if b.destructed {
		b.mu.Unlock()
		return nil
	}
	list := slices.Clone(b.handlers[key{target: target, name: name}])
	if len(list) == 0 {
		b.mu.Unlock()
		return nil
	}
	f := &frame{name: name}
	b.frames = append(b.frames, f)
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		if i := slices.Index(b.frames, f); i >= 0 {
			b.frames = slices.Delete(b.frames, i, i+1)
		}
		b.mu.Unlock()
	}()

	var errs []error
	for _, e := range list {
		if b.stopped(f) {
			break
		}
		err := e.handler(args...)
		if errors.Is(err, ErrVeto) {
			return ErrVeto
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) stopped(f *frame) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return f.stopped
}

// StopPropagation stops the handlers still pending in the innermost running
// dispatch of name. It has no effect when name is not being fired.
func (b *Bus) StopPropagation(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.frames) - 1; i >= 0; i-- {
		if b.frames[i].name == name {
			b.frames[i].stopped = true
			return
		}
	}
}

// Destruct removes every handler, detaches native bridges and makes further
// registrations and fires no-ops. It is safe to call more than once.
func (b *Bus) Destruct() {
	b.mu.Lock()
	if b.destructed {
		b.mu.Unlock()
		return
	}
	b.destructed = true
	removers := make([]func(), 0, len(b.bridges))
	for _, remove := range b.bridges {
		removers = append(removers, remove)
	}
	b.handlers = make(map[key][]entry)
	b.bridges = make(map[key]func())
	b.mu.Unlock()

	for _, remove := range removers {
		remove()
	}
}

// Destructed reports whether Destruct has been called.
func (b *Bus) Destructed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.destructed
}
