// Package dialog implements floating dialogs: z-ordered, draggable and
// resizable windows attached to a mount node, with lifecycle events fired
// on the host's event bus.
package dialog

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/yumosx/loft/internal/dom"
	"github.com/yumosx/loft/internal/events"
	"github.com/yumosx/loft/internal/i18n"
	"github.com/yumosx/loft/internal/toolbar"
)

// Options configure a dialog.
type Options struct {
	Resizable     bool     `json:"resizable" jsonschema:"description=Dialogs can be resized from the corner handle,default=true"`
	Draggable     bool     `json:"draggable" jsonschema:"description=Dialogs can be moved by their header,default=true"`
	Fullsize      bool     `json:"fullsize,omitempty" jsonschema:"description=Open dialogs maximized"`
	Buttons       []string `json:"buttons,omitempty" jsonschema:"description=Header toolbar controls,example=dialog.close,example=dialog.fullsize"`
	RemoveButtons []string `json:"remove_buttons,omitempty" jsonschema:"description=Controls removed from buttons"`
	ZIndex        int      `json:"z_index,omitempty" jsonschema:"description=Initial z-index,default=1000"`
	Width         int      `json:"width,omitempty" jsonschema:"description=Default width in cells,default=48"`
	Height        int      `json:"height,omitempty" jsonschema:"description=Default height in cells,default=12"`
}

// DefaultOptions returns the options used when neither a host nor
// WithConfig provides any.
func DefaultOptions() Options {
	return Options{
		Resizable: true,
		Draggable: true,
		Buttons:   []string{"dialog.close"},
		ZIndex:    1000,
		Width:     48,
		Height:    12,
	}
}

// Host is the editor a dialog belongs to. Dialogs share its bus, window and
// mount, and fire their lifecycle events on that bus.
type Host interface {
	ID() string
	Events() *events.Bus
	Window() *dom.Window
	Mount() *Mount
	DialogOptions() Options
	TextIcons() bool
}

// Toolbar renders header controls.
type Toolbar interface {
	Build(buttons []string, node *html.Node, view any, bus *events.Bus) []*html.Node
}

type settings struct {
	options *Options
	mount   *Mount
	window  *dom.Window
	toolbar Toolbar
	catalog *i18n.Catalog
}

// Option customizes New.
type Option func(*settings)

// WithConfig replaces the host's dialog options.
func WithConfig(o Options) Option {
	return func(s *settings) {
		s.options = &o
	}
}

// WithMount attaches the dialog under m instead of the host's mount.
func WithMount(m *Mount) Option {
	return func(s *settings) {
		s.mount = m
	}
}

// WithWindow sets the window whose events the dialog listens to.
func WithWindow(w *dom.Window) Option {
	return func(s *settings) {
		s.window = w
	}
}

// WithCatalog sets the catalog preset button labels are translated with.
func WithCatalog(c *i18n.Catalog) Option {
	return func(s *settings) {
		s.catalog = c
	}
}

// WithToolbar sets the header toolbar builder.
func WithToolbar(t Toolbar) Option {
	return func(s *settings) {
		s.toolbar = t
	}
}

type sessionMode int

const (
	sessionNone sessionMode = iota
	sessionDrag
	sessionResize
)

type anchor struct {
	pointerX, pointerY int
	left, top          int
	width, height      int
}

// Dialog is one floating window.
type Dialog struct {
	id      string
	host    Host
	events  *events.Bus
	window  *dom.Window
	mount   *Mount
	options Options
	toolbar Toolbar
	catalog *i18n.Catalog

	container *html.Node
	box       *html.Node
	header    *html.Node
	title     *html.Node
	toolbarEl *html.Node
	body      *html.Node
	footer    *html.Node
	resizer   *html.Node
	buttons   []*html.Node

	focused *html.Node

	offsetX, offsetY  int
	hasOffset         bool
	moved             bool
	destroyAfterClose bool
	selfMaximized     bool
	destructed        bool

	mode   sessionMode
	anchor anchor
}

// New builds a dialog, attaches its chrome to the mount and starts listening
// to the window. host may be nil, in which case the dialog uses a private
// bus, fires no lifecycle events and mounts into DefaultMount unless an
// option says otherwise.
func New(host Host, opts ...Option) *Dialog {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	d := &Dialog{
		id:   uuid.NewString(),
		host: host,
	}

	switch {
	case s.options != nil:
		d.options = *s.options
	case host != nil:
		d.options = host.DialogOptions()
	default:
		d.options = DefaultOptions()
	}

	if host != nil && host.Events() != nil {
		d.events = host.Events()
	} else {
		d.events = events.New()
	}

	d.window = s.window
	d.mount = s.mount
	if host != nil {
		if d.window == nil {
			d.window = host.Window()
		}
		if d.mount == nil {
			d.mount = host.Mount()
		}
	}
	if d.window == nil || d.mount == nil {
		doc, mount := defaults()
		if d.window == nil {
			d.window = doc.Window
		}
		if d.mount == nil {
			d.mount = mount
		}
	}

	d.catalog = s.catalog
	if d.catalog == nil {
		d.catalog = i18n.Default()
	}
	d.toolbar = s.toolbar
	if d.toolbar == nil {
		d.toolbar = toolbar.NewBuilder(d.catalog, d.textIcons())
	}

	d.buildChrome()
	d.mount.attach(d)
	// z-indexes stay unique among the dialogs of a mount.
	if maxZ, ok := d.mount.maxZIndex(d); ok && maxZ >= d.options.ZIndex {
		d.setZIndex(maxZ + 1)
	}
	d.listen()
	return d
}

func (d *Dialog) textIcons() bool {
	return d.host != nil && d.host.TextIcons()
}

func (d *Dialog) buildChrome() {
	markup := `<div class="loft loft_dialog_box">` +
		`<div class="loft_dialog_overlay"></div>` +
		`<div class="loft_dialog">` +
		`<div class="loft_dialog_header non-selected">` +
		`<div class="loft_dialog_header-title"></div>` +
		`<div class="loft_dialog_header-toolbar"></div>` +
		`</div>` +
		`<div class="loft_dialog_content"></div>` +
		`<div class="loft_dialog_footer"></div>`
	if d.options.Resizable {
		markup += `<div class="loft_dialog_resizer"></div>`
	}
	markup += `</div></div>`

	c := dom.Build(markup)
	d.container = c
	d.setZIndex(d.options.ZIndex)
	if d.host != nil && d.host.ID() != "" {
		dom.SetAttr(c, "data-editor_id", d.host.ID())
	}
	if d.textIcons() {
		dom.AddClass(c, "loft_text_icons")
	}

	d.box = dom.First(c, ".loft_dialog")
	d.header = dom.First(c, ".loft_dialog_header")
	d.title = dom.First(c, ".loft_dialog_header > .loft_dialog_header-title")
	d.toolbarEl = dom.First(c, ".loft_dialog_header > .loft_dialog_header-toolbar")
	d.body = dom.First(c, ".loft_dialog_content")
	d.footer = dom.First(c, ".loft_dialog_footer")
	d.resizer = dom.First(c, ".loft_dialog_resizer")

	buttons := slices.DeleteFunc(slices.Clone(d.options.Buttons), func(b string) bool {
		return slices.Contains(d.options.RemoveButtons, b)
	})
	d.buttons = d.toolbar.Build(buttons, d.toolbarEl, d, d.events)
}

func (d *Dialog) listen() {
	own := events.WithOwner(d)
	d.events.
		On(d.window, "mousemove", d.onMouseMove, own).
		On(d.window, "mouseup", d.onMouseUp, own).
		On(d.window, "keydown", d.onKeyDown, own).
		On(d.window, "resize", d.onResize, own)

	d.events.On(d.container, "close_dialog", d.CloseHandler, own)
	if d.header != nil {
		d.events.On(d.header, "mousedown", d.onHeaderMouseDown, own)
	}
	if d.resizer != nil && d.options.Resizable {
		d.events.On(d.resizer, "mousedown", d.onResizerMouseDown, own)
	}
	if d.host != nil {
		d.events.On(nil, "beforeDestruct", func(...any) error {
			d.Destruct()
			return nil
		}, own)
	}
}

// fire emits a lifecycle event. Lifecycle events only exist for dialogs
// owned by a host.
func (d *Dialog) fire(target any, names string, args ...any) error {
	if d.host == nil {
		return nil
	}
	return d.events.Fire(target, names, args...)
}

// ID returns the identifier assigned at construction.
func (d *Dialog) ID() string { return d.id }

// Events returns the bus the dialog listens and fires on.
func (d *Dialog) Events() *events.Bus { return d.events }

// Window returns the window the dialog listens to.
func (d *Dialog) Window() *dom.Window { return d.window }

// Mount returns the mount the dialog is attached to.
func (d *Dialog) Mount() *Mount { return d.mount }

// Options returns the effective options.
func (d *Dialog) Options() Options { return d.options }

// SetOptions replaces the options. Flags are read on every interaction, so
// disabling dragging or resizing takes effect even mid-session.
func (d *Dialog) SetOptions(o Options) { d.options = o }

// Container returns the chrome root.
func (d *Dialog) Container() *html.Node { return d.container }

// Box returns the positioned window element inside the container.
func (d *Dialog) Box() *html.Node { return d.box }

// Header returns the header element that starts drag sessions.
func (d *Dialog) Header() *html.Node { return d.header }

// Title returns the title slot.
func (d *Dialog) Title() *html.Node { return d.title }

// Toolbar returns the header toolbar slot.
func (d *Dialog) Toolbar() *html.Node { return d.toolbarEl }

// Body returns the content slot.
func (d *Dialog) Body() *html.Node { return d.body }

// Footer returns the footer slot.
func (d *Dialog) Footer() *html.Node { return d.footer }

// Resizer returns the resize handle, or nil for fixed size dialogs.
func (d *Dialog) Resizer() *html.Node { return d.resizer }

// Modal reports whether the dialog was opened as modal.
func (d *Dialog) Modal() bool { return dom.HasClass(d.container, "loft_modal") }

// Focus records n as the focused node of the dialog.
func (d *Dialog) Focus(n *html.Node) { d.focused = n }

// Focused returns the focused node, if any.
func (d *Dialog) Focused() *html.Node { return d.focused }

// Destructed reports whether Destruct has run.
func (d *Dialog) Destructed() bool { return d.destructed }

// Open shows the dialog. A nil content or title leaves the corresponding
// slot untouched. Handlers of beforeOpen can veto with events.ErrVeto, in
// which case nothing changes.
func (d *Dialog) Open(content, title Content, destroyAfterClose, modal bool) {
	if d.destructed {
		return
	}
	if err := d.fire(d, "beforeOpen"); errors.Is(err, events.ErrVeto) {
		slog.Debug("Dialog open vetoed", "id", d.id)
		return
	}

	d.destroyAfterClose = destroyAfterClose
	if title != nil {
		d.SetTitle(title)
	}
	if len(content) > 0 {
		d.SetContent(content)
	}

	dom.AddClass(d.container, "active")
	if modal {
		dom.AddClass(d.container, "loft_modal")
	}

	if d.hasOffset {
		d.SetPosition(d.offsetX, d.offsetY)
	} else {
		d.Center()
	}
	d.SetMaxZIndex()

	if d.options.Fullsize {
		d.Maximization(true)
	}

	_ = d.fire(nil, "afterOpen", d)
}

// IsOpened reports whether the dialog is visible.
func (d *Dialog) IsOpened() bool {
	return !d.destructed && dom.HasClass(d.container, "active")
}

// Close hides the dialog and destructs it when it was opened with
// destroyAfterClose. It does nothing once the dialog is destructed.
func (d *Dialog) Close() {
	if d.destructed {
		return
	}
	_ = d.fire(nil, "beforeClose", d)

	dom.RemoveClass(d.container, "active")
	if d.selfMaximized {
		d.Maximization(false)
	}

	if d.destroyAfterClose {
		d.Destruct()
	}

	_ = d.fire(d, "afterClose")
}

// CloseHandler adapts Close to an event handler. When the first argument is
// an event its propagation and default action are stopped.
func (d *Dialog) CloseHandler(args ...any) error {
	if len(args) > 0 {
		if ev, ok := args[0].(dom.Eventer); ok {
			ev.Base().StopImmediatePropagation()
			ev.Base().PreventDefault()
		}
	}
	d.Close()
	return nil
}

// Destruct detaches the chrome and releases the listeners the dialog owns.
// A private bus is destroyed with the dialog. On a shared host bus only the
// dialog's own handlers are removed. Calling Destruct again does nothing.
func (d *Dialog) Destruct() {
	if d.destructed {
		return
	}
	d.mount.detach(d)

	for _, n := range append([]*html.Node{d.container, d.header, d.resizer}, d.buttons...) {
		if n != nil {
			d.events.Off(n, "")
		}
	}
	if d.host == nil {
		d.events.Destruct()
	} else {
		d.events.OffOwner(d, "")
	}
	d.mode = sessionNone
	d.destructed = true
	slog.Debug("Dialog destructed", "id", d.id)
}

// Dispatch delivers a DOM event to its target node and then to each
// ancestor up to the container, through the dialog's bus, until a handler
// stops propagation.
func (d *Dialog) Dispatch(ev dom.Eventer) {
	base := ev.Base()
	for n := base.Target; n != nil; n = n.Parent {
		if err := d.events.Fire(n, base.Type, ev); err != nil && !errors.Is(err, events.ErrVeto) {
			slog.Error("Dialog event handler failed", "event", base.Type, "error", err)
		}
		if base.PropagationStopped() || n == d.container {
			return
		}
	}
}
