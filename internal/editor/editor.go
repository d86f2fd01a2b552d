// Package editor is the host that owns an event bus, a document, a dialog
// mount point, a command registry and the hotkeys bound to those commands.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"golang.org/x/net/html"

	"github.com/yumosx/loft/internal/csync"
	"github.com/yumosx/loft/internal/dialog"
	"github.com/yumosx/loft/internal/dom"
	"github.com/yumosx/loft/internal/events"
	"github.com/yumosx/loft/internal/hotkeys"
	"github.com/yumosx/loft/internal/i18n"
	"github.com/yumosx/loft/internal/toolbar"
)

// ErrUnknownCommand is returned by ExecCommand for names nobody registered.
var ErrUnknownCommand = errors.New("unknown command")

// Command runs against the editor that executes it.
type Command func(e *Editor) error

type command struct {
	name string
	fn   Command
}

// Options configure New.
type Options struct {
	// Viewport size in cells.
	Width, Height int

	Dialog           dialog.Options
	TextIcons        bool
	Language         string
	CommandToHotkeys map[string][]string
}

// Editor is a dialog host.
type Editor struct {
	id        string
	events    *events.Bus
	doc       *dom.Document
	workplace *html.Node
	mount     *dialog.Mount
	options   Options
	catalog   *i18n.Catalog
	toolbar   *toolbar.Builder
	commands  *csync.Map[string, command]
	hotkeys   *hotkeys.Dispatcher

	initialized bool
	destructed  bool
}

// New creates an editor. Hotkeys start working once Init fires afterInit.
func New(opts Options) *Editor {
	if opts.Width <= 0 {
		opts.Width = dialog.DefaultWindowWidth
	}
	if opts.Height <= 0 {
		opts.Height = dialog.DefaultWindowHeight
	}
	if opts.Dialog.ZIndex == 0 && opts.Dialog.Width == 0 && opts.Dialog.Height == 0 && opts.Dialog.Buttons == nil {
		opts.Dialog = dialog.DefaultOptions()
	}
	if opts.CommandToHotkeys == nil {
		opts.CommandToHotkeys = hotkeys.DefaultCommandToHotkeys()
	}

	e := &Editor{
		id:       uuid.NewString(),
		events:   events.New(),
		doc:      dom.NewDocument(opts.Width, opts.Height),
		options:  opts,
		commands: csync.NewMap[string, command](),
	}
	if opts.Language != "" {
		e.catalog = i18n.New(opts.Language)
	} else {
		e.catalog = i18n.Default()
	}
	e.toolbar = toolbar.NewBuilder(e.catalog, opts.TextIcons)

	e.workplace = dom.Build(`<div class="loft loft_container"><div class="loft_workplace"></div></div>`)
	dom.SetAttr(e.workplace, "data-editor_id", e.id)
	dom.Append(e.doc.Body, e.workplace)
	e.mount = dialog.NewMount(e.workplace)

	e.hotkeys = hotkeys.New(e.events, e, opts.CommandToHotkeys)
	e.events.On(nil, "afterInit", func(...any) error {
		e.hotkeys.Attach()
		return nil
	})
	return e
}

// Init finishes bootstrapping by firing afterInit. Calling it again does
// nothing.
func (e *Editor) Init() error {
	if e.initialized || e.destructed {
		return nil
	}
	e.initialized = true
	if err := e.events.Fire(nil, "afterInit", e); err != nil && !errors.Is(err, events.ErrVeto) {
		return fmt.Errorf("failed to initialize editor: %w", err)
	}
	slog.Debug("Editor initialized", "id", e.id)
	return nil
}

func (e *Editor) ID() string                    { return e.id }
func (e *Editor) Events() *events.Bus           { return e.events }
func (e *Editor) Document() *dom.Document       { return e.doc }
func (e *Editor) Window() *dom.Window           { return e.doc.Window }
func (e *Editor) Mount() *dialog.Mount          { return e.mount }
func (e *Editor) DialogOptions() dialog.Options { return e.options.Dialog }
func (e *Editor) TextIcons() bool               { return e.options.TextIcons }
func (e *Editor) Catalog() *i18n.Catalog        { return e.catalog }
func (e *Editor) Hotkeys() *hotkeys.Dispatcher  { return e.hotkeys }
func (e *Editor) Destructed() bool              { return e.destructed }

// SetDialogOptions replaces the defaults used by dialogs created afterwards.
func (e *Editor) SetDialogOptions(o dialog.Options) {
	e.options.Dialog = o
}

// RegisterCommand adds fn under name, matched case-insensitively, and binds
// the given hotkeys to it.
func (e *Editor) RegisterCommand(name string, fn Command, hotkeys ...string) {
	e.commands.Set(strings.ToLower(name), command{name: name, fn: fn})
	if len(hotkeys) > 0 {
		e.hotkeys.Register(name, hotkeys...)
	}
}

// ExecCommand runs a registered command between beforeCommand and
// afterCommand. A veto from a beforeCommand handler cancels it.
func (e *Editor) ExecCommand(name string) error {
	if e.destructed {
		return nil
	}
	cmd, ok := e.commands.Get(strings.ToLower(name))
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if errors.Is(e.events.Fire(nil, "beforeCommand", cmd.name), events.ErrVeto) {
		slog.Debug("Command vetoed", "command", cmd.name)
		return nil
	}
	err := cmd.fn(e)
	_ = e.events.Fire(nil, "afterCommand", cmd.name, err)
	return err
}

// Commands returns the registered command names, sorted.
func (e *Editor) Commands() []string {
	var out []string
	for _, cmd := range e.commands.Seq2() {
		out = append(out, cmd.name)
	}
	sort.Strings(out)
	return out
}

// FindCommands returns the command names fuzzily matching query, best match
// first. An empty query returns every command.
func (e *Editor) FindCommands(query string) []string {
	names := e.Commands()
	if query == "" {
		return names
	}
	words := make([]string, len(names))
	for i, name := range names {
		words[i] = strings.ToLower(name)
	}
	matches := fuzzy.Find(strings.ToLower(query), words)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, names[m.Index])
	}
	return out
}

// Rebind replaces the hotkey table, keeping the interceptors attached.
func (e *Editor) Rebind(commandToHotkeys map[string][]string) {
	e.options.CommandToHotkeys = commandToHotkeys
	e.hotkeys.Rebind(commandToHotkeys)
}

func (e *Editor) dialogOptions(opts []dialog.Option) []dialog.Option {
	return append([]dialog.Option{
		dialog.WithToolbar(e.toolbar),
		dialog.WithCatalog(e.catalog),
	}, opts...)
}

func (e *Editor) presetOptions(opts []dialog.Option) []dialog.Option {
	return append([]dialog.Option{
		dialog.WithMount(e.mount),
		dialog.WithWindow(e.doc.Window),
		dialog.WithConfig(e.options.Dialog),
		dialog.WithToolbar(e.toolbar),
		dialog.WithCatalog(e.catalog),
	}, opts...)
}

// NewDialog creates a dialog sharing the editor's bus, window and mount.
func (e *Editor) NewDialog(opts ...dialog.Option) *dialog.Dialog {
	return dialog.New(e, e.dialogOptions(opts)...)
}

// Alert opens an alert in the editor's mount.
func (e *Editor) Alert(msg, title string, cb func(*dialog.Dialog) error, opts ...dialog.Option) *dialog.Dialog {
	return dialog.Alert(msg, title, cb, "", e.presetOptions(opts)...)
}

// Prompt opens a prompt in the editor's mount.
func (e *Editor) Prompt(msg, title string, cb func(string) error, placeholder string, opts ...dialog.Option) *dialog.Dialog {
	return dialog.Prompt(msg, title, cb, placeholder, e.presetOptions(opts)...)
}

// Confirm opens a confirmation in the editor's mount.
func (e *Editor) Confirm(msg, title string, cb func(bool), opts ...dialog.Option) *dialog.Dialog {
	return dialog.Confirm(msg, title, cb, e.presetOptions(opts)...)
}

// Dialogs returns the dialogs under the editor's mount in document order.
func (e *Editor) Dialogs() []*dialog.Dialog {
	return e.mount.Dialogs()
}

// TopDialog returns the open dialog with the highest z-index.
func (e *Editor) TopDialog() (*dialog.Dialog, bool) {
	return e.mount.Top()
}

// KeyDown offers a key press to the hotkeys first and then, unless it was
// consumed, to the window.
func (e *Editor) KeyDown(ev *dom.KeyboardEvent) {
	ev.Type = "keydown"
	e.fireKey(ev)
}

// KeyUp delivers a key release the same way as KeyDown.
func (e *Editor) KeyUp(ev *dom.KeyboardEvent) {
	ev.Type = "keyup"
	e.fireKey(ev)
}

func (e *Editor) fireKey(ev *dom.KeyboardEvent) {
	if e.destructed {
		return
	}
	if err := e.events.Fire(nil, ev.Type, ev); err != nil && !errors.Is(err, events.ErrVeto) {
		slog.Error("Key handler failed", "event", ev.Type, "error", err)
	}
	if ev.PropagationStopped() {
		return
	}
	e.doc.Window.Dispatch(ev)
}

// Resize changes the viewport size.
func (e *Editor) Resize(width, height int) {
	e.options.Width, e.options.Height = width, height
	e.doc.Window.Resize(width, height)
}

// Destruct fires beforeDestruct, letting dialogs release themselves, then
// tears down the hotkeys and the bus. Calling it again does nothing.
func (e *Editor) Destruct() {
	if e.destructed {
		return
	}
	_ = e.events.Fire(nil, "beforeDestruct", e)
	for _, d := range e.mount.Dialogs() {
		d.Destruct()
	}
	e.hotkeys.Detach()
	e.events.Destruct()
	dom.Detach(e.workplace)
	e.destructed = true
	slog.Debug("Editor destructed", "id", e.id)
}
