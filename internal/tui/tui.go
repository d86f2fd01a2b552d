// Package tui is a terminal playground for the dialog manager. It renders
// the dialogs of one editor as layered boxes and feeds terminal keys and
// mouse events back into the editor as DOM events.
package tui

import (
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/slice"
	xhtml "golang.org/x/net/html"

	"github.com/yumosx/loft/internal/config"
	"github.com/yumosx/loft/internal/dialog"
	"github.com/yumosx/loft/internal/dom"
	"github.com/yumosx/loft/internal/editor"
	"github.com/yumosx/loft/internal/events"
	"github.com/yumosx/loft/internal/tui/styles"
	"github.com/yumosx/loft/internal/tui/util"
)

const defaultMessageTTL = 5 * time.Second

// ConfigChangedMsg carries a reloaded configuration into the running
// program.
type ConfigChangedMsg struct {
	Config *config.Config
}

// runCommandMsg executes a command after the dialog that asked for it has
// closed.
type runCommandMsg struct {
	name string
}

type press struct {
	dialog *dialog.Dialog
	node   *xhtml.Node
}

type appModel struct {
	width, height int
	keyMap        KeyMap
	help          help.Model

	cfg    *config.Config
	editor *editor.Editor
	body   *bodyRenderer

	input     textinput.Model
	inputNode *xhtml.Node

	info    util.InfoMsg
	pressed press
	counter int

	quitting bool
	copyText func(string) error
	pending  []tea.Cmd
}

// New creates the playground model for cfg.
func New(cfg *config.Config) tea.Model {
	if err := styles.DefaultManager().SetTheme(cfg.Options.TUI.Theme); err != nil {
		slog.Warn("Unknown theme, using the default", "theme", cfg.Options.TUI.Theme)
	}
	t := styles.CurrentTheme()

	ti := textinput.New()
	ti.SetVirtualCursor(false)
	ti.Prompt = "> "
	ti.SetStyles(t.S().TextInput)

	h := help.New()
	h.Styles = t.S().Help

	a := &appModel{
		cfg:      cfg,
		keyMap:   DefaultKeyMap().WithBindings(cfg.Bindings()),
		help:     h,
		body:     newBodyRenderer(),
		input:    ti,
		copyText: clipboard.WriteAll,
	}
	a.editor = editor.New(editor.Options{
		Dialog:           *cfg.Dialog,
		TextIcons:        cfg.Options.TextIcons,
		Language:         cfg.Options.Language,
		CommandToHotkeys: cfg.Bindings(),
	})
	a.registerCommands()
	a.editor.Events().On(nil, "afterCommand", func(args ...any) error {
		if len(args) > 1 {
			if err, ok := args[1].(error); ok && err != nil {
				a.report(util.ReportError(err))
			}
		}
		return nil
	})
	if err := a.editor.Init(); err != nil {
		slog.Error("Error initializing editor", "error", err)
	}
	return a
}

func (a *appModel) report(cmd tea.Cmd) {
	a.pending = append(a.pending, cmd)
}

func (a *appModel) registerCommands() {
	e := a.editor
	e.RegisterCommand("about", func(e *editor.Editor) error {
		e.Alert("Draggable, resizable dialogs with hotkeys.", "About loft", nil)
		return nil
	})
	e.RegisterCommand("newDialog", func(e *editor.Editor) error {
		a.counter++
		d := e.NewDialog()
		d.Open(dialog.HTML(sampleBody(a.counter)), dialog.HTML(fmt.Sprintf("Dialog %d", a.counter)), true, false)
		if x, y, ok := d.Position(); ok {
			step := a.counter % 5
			d.SetPosition(x+2*step, y+step)
		}
		return nil
	})
	e.RegisterCommand("rename", func(e *editor.Editor) error {
		top, ok := e.TopDialog()
		if !ok {
			a.report(util.ReportWarn("No dialog to rename"))
			return nil
		}
		e.Prompt("New title", "Rename", func(value string) error {
			value = strings.TrimSpace(value)
			if value == "" {
				return events.ErrVeto
			}
			top.SetTitle(dialog.HTML(html.EscapeString(value)))
			return nil
		}, strings.TrimSpace(dom.TextContent(top.Title())))
		return nil
	})
	e.RegisterCommand("quit", func(e *editor.Editor) error {
		e.Confirm("Quit loft?", "", func(yes bool) {
			a.quitting = yes
		})
		return nil
	})
	e.RegisterCommand("palette", func(e *editor.Editor) error {
		e.Prompt("Command", "Run command", func(value string) error {
			matches := e.FindCommands(strings.TrimSpace(value))
			if len(matches) == 0 {
				a.report(util.ReportWarn(fmt.Sprintf("No command matches %q", value)))
				return events.ErrVeto
			}
			a.report(util.CmdHandler(runCommandMsg{name: matches[0]}))
			return nil
		}, "newDialog")
		return nil
	})
	e.RegisterCommand("copy", func(e *editor.Editor) error {
		top, ok := e.TopDialog()
		if !ok {
			a.report(util.ReportWarn("Nothing to copy"))
			return nil
		}
		text := strings.TrimSpace(dom.TextContent(top.Body()))
		if err := a.copyText(text); err != nil {
			return fmt.Errorf("failed to copy dialog text: %w", err)
		}
		a.report(util.ReportInfo("Copied dialog text"))
		return nil
	})
	for _, name := range []string{"removeFormat", "insertOrderedList", "insertUnorderedList", "selectall"} {
		e.RegisterCommand(name, func(*editor.Editor) error {
			a.report(util.ReportInfo(name + " has nothing to act on here"))
			return nil
		})
	}
}

func sampleBody(n int) string {
	return fmt.Sprintf(`<h3>Dialog %d</h3>`+
		`<p>Drag the <strong>header</strong> to move me, the corner to resize me.</p>`+
		`<ul><li><code>esc</code> closes the topmost dialog</li><li>the header buttons toggle full size and close</li></ul>`, n)
}

func (a *appModel) Init() tea.Cmd {
	if combos := a.editor.Hotkeys().CombosFor("newDialog"); len(combos) > 0 {
		return util.ReportInfo(DisplayCombo(combos[0]) + " opens a dialog")
	}
	return nil
}

func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.editor.Resize(msg.Width, a.viewportHeight())
	case util.InfoMsg:
		a.info = msg
		ttl := msg.TTL
		if ttl == 0 {
			ttl = defaultMessageTTL
		}
		cmds = append(cmds, tea.Tick(ttl, func(time.Time) tea.Msg {
			return util.ClearStatusMsg{}
		}))
	case util.ClearStatusMsg:
		a.info = util.InfoMsg{}
	case ConfigChangedMsg:
		a.applyConfig(msg.Config)
	case runCommandMsg:
		if err := a.editor.ExecCommand(msg.name); err != nil {
			cmds = append(cmds, util.ReportError(err))
		}
	case tea.KeyPressMsg:
		cmds = append(cmds, a.handleKey(msg))
	case tea.MouseClickMsg:
		a.handleMouseDown(msg.Mouse())
	case tea.MouseMotionMsg:
		m := msg.Mouse()
		a.editor.Window().Dispatch(pointerEvent("mousemove", m))
	case tea.MouseReleaseMsg:
		a.handleMouseUp(msg.Mouse())
	}

	a.syncInput()
	cmds = append(cmds, a.pending...)
	a.pending = nil

	if a.quitting {
		a.editor.Destruct()
		return a, tea.Quit
	}
	return a, tea.Batch(cmds...)
}

func (a *appModel) viewportHeight() int {
	return max(0, a.height-1)
}

func (a *appModel) applyConfig(cfg *config.Config) {
	a.cfg = cfg
	a.editor.Rebind(cfg.Bindings())
	if cfg.Dialog != nil {
		a.editor.SetDialogOptions(*cfg.Dialog)
	}
	a.keyMap = a.keyMap.WithBindings(cfg.Bindings())
	if err := styles.DefaultManager().SetTheme(cfg.Options.TUI.Theme); err == nil {
		t := styles.CurrentTheme()
		a.input.SetStyles(t.S().TextInput)
		a.help.Styles = t.S().Help
	}
	a.report(util.ReportInfo("Configuration reloaded"))
}

// handleKey offers the key to the editor first: hotkeys, then the dialogs'
// Escape handling. What is left drives focus and the text input.
func (a *appModel) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	down := keyboardEvent(msg)
	a.editor.KeyDown(down)
	a.editor.KeyUp(keyupFor(down))
	if down.PropagationStopped() {
		return nil
	}

	top, ok := a.editor.TopDialog()
	if !ok {
		return nil
	}
	switch {
	case key.Matches(msg, a.keyMap.Next):
		a.cycleFocus(top, 1)
		return nil
	case key.Matches(msg, a.keyMap.Prev):
		a.cycleFocus(top, -1)
		return nil
	case key.Matches(msg, a.keyMap.Activate):
		a.activate(top)
		return nil
	}

	if a.inputNode == nil {
		return nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	dom.SetValue(a.inputNode, a.input.Value())
	return cmd
}

func focusables(d *dialog.Dialog) []*xhtml.Node {
	var out []*xhtml.Node
	if input := dom.First(d.Body(), "input"); input != nil {
		out = append(out, input)
	}
	return append(out, dom.Children(d.Footer())...)
}

func (a *appModel) cycleFocus(d *dialog.Dialog, step int) {
	nodes := focusables(d)
	if len(nodes) == 0 {
		return
	}
	i := -1
	for j, n := range nodes {
		if n == d.Focused() {
			i = j
			break
		}
	}
	i = (i + step + len(nodes)) % len(nodes)
	d.Focus(nodes[i])
}

// activate clicks the focused button or submits the form around the focused
// input.
func (a *appModel) activate(d *dialog.Dialog) {
	n := d.Focused()
	if n == nil {
		return
	}
	if n.Data == "input" {
		if form := n.Parent; form != nil && form.Data == "form" {
			d.Dispatch(&dom.Event{Type: "submit", Target: form})
		}
		return
	}
	d.Dispatch(dom.NewPointerEvent("click", 0, 0, n))
}

func (a *appModel) frames() []frame {
	return layoutFrames(a.editor.Mount(), a.width, a.viewportHeight())
}

func (a *appModel) handleMouseDown(m tea.Mouse) {
	f, node, ok := hitTest(a.frames(), m.X, m.Y)
	if !ok {
		a.pressed = press{}
		return
	}
	ev := pointerEvent("mousedown", m)
	ev.Target = node
	f.dialog.Dispatch(ev)
	if node.Data == "input" || node.Parent == f.dialog.Footer() {
		f.dialog.Focus(node)
	}
	a.pressed = press{dialog: f.dialog, node: node}
}

// handleMouseUp ends drag and resize sessions and turns a press and release
// on the same node into a click.
func (a *appModel) handleMouseUp(m tea.Mouse) {
	a.editor.Window().Dispatch(pointerEvent("mouseup", m))
	pressed := a.pressed
	a.pressed = press{}
	if pressed.node == nil || m.Button != tea.MouseLeft && m.Button != tea.MouseNone {
		return
	}
	f, node, ok := hitTest(a.frames(), m.X, m.Y)
	if !ok || f.dialog != pressed.dialog || node != pressed.node {
		return
	}
	ev := pointerEvent("click", m)
	ev.Target = node
	f.dialog.Dispatch(ev)
}

// syncInput binds the text input to the focused input node of the topmost
// dialog.
func (a *appModel) syncInput() {
	var node *xhtml.Node
	if top, ok := a.editor.TopDialog(); ok {
		if n := top.Focused(); n != nil && n.Data == "input" {
			node = n
		}
	}
	if node == a.inputNode {
		return
	}
	a.inputNode = node
	if node == nil {
		a.input.Blur()
		a.input.SetValue("")
		return
	}
	placeholder, _ := dom.Attr(node, "placeholder")
	a.input.Placeholder = placeholder
	a.input.SetValue(dom.Value(node))
	a.input.CursorEnd()
	a.input.Focus()
}

func (a *appModel) View() tea.View {
	t := styles.CurrentTheme()
	frames := a.frames()

	base := strings.Repeat("\n", a.viewportHeight()) + a.statusLine()
	layers := []*lipgloss.Layer{lipgloss.NewLayer(base)}

	overlayAt := -1
	for i := len(frames) - 1; i >= 0; i-- {
		if frames[i].dialog.Modal() {
			overlayAt = i
			break
		}
	}
	var cursor *tea.Cursor
	for i, f := range frames {
		if i == overlayAt {
			layers = append(layers, lipgloss.NewLayer(a.overlay()))
		}
		focused := i == len(frames)-1
		layers = append(layers, lipgloss.NewLayer(a.renderFrame(f, focused)).X(f.box.X).Y(f.box.Y))
		if f.resizer.W > 0 {
			layers = append(layers, lipgloss.NewLayer(t.S().Resizer.Render(styles.ResizeIcon)).X(f.resizer.X).Y(f.resizer.Y))
		}
		if focused && f.input != nil && f.input.node == a.inputNode {
			if c := a.input.Cursor(); c != nil {
				c.X += f.input.rect.X
				c.Y += f.input.rect.Y
				cursor = c
			}
		}
	}

	canvas := lipgloss.NewCanvas(layers...)
	view := tea.NewView(canvas.Render())
	view.BackgroundColor = t.BgBase
	view.Cursor = cursor
	return view
}

func (a *appModel) statusLine() string {
	t := styles.CurrentTheme()
	if a.info.Msg == "" {
		return a.help.View(a.keyMap)
	}
	var style lipgloss.Style
	icon := styles.InfoIcon
	switch a.info.Type {
	case util.InfoTypeError:
		style, icon = t.S().Error, styles.ErrorIcon
	case util.InfoTypeWarn:
		style, icon = t.S().Warning, styles.WarningIcon
	default:
		style = t.S().Info
	}
	return style.Render(fit(icon+" "+a.info.Msg, max(0, a.width)))
}

func (a *appModel) overlay() string {
	line := styles.CurrentTheme().S().Overlay.Render(strings.Repeat(" ", max(0, a.width)))
	lines := make([]string, a.viewportHeight())
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// renderFrame draws a dialog into its box: header, body and footer inside a
// rounded border.
func (a *appModel) renderFrame(f frame, focused bool) string {
	t := styles.CurrentTheme()
	s := t.S()
	d := f.dialog
	inner := f.box.W - 2

	var lines []string

	title := strings.TrimSpace(dom.TextContent(d.Title()))
	header := styles.ApplyForegroundGrad(s.Header, fit(title, f.title.W), t.Primary, t.Secondary)
	header = fit(header, f.title.W)
	for _, tool := range f.tools {
		header += s.Tool.Render(" " + tool.label + " ")
	}
	lines = append(lines, fit(header, inner))

	body := a.renderBody(f)
	for i := range f.body.H {
		line := ""
		if i < len(body) {
			line = body[i]
		}
		lines = append(lines, fit(line, inner))
	}

	if f.footer.W > 0 {
		buttons := make([]string, len(f.buttons))
		for i, b := range f.buttons {
			style := s.Button
			if b.node == d.Focused() {
				style = s.ButtonFocused
			}
			buttons[i] = style.Render(b.label)
		}
		footer := " " + strings.Join(slice.Intersperse(buttons, " "), "")
		lines = append(lines, fit(footer, inner))
	}

	style := s.Dialog
	if focused {
		style = s.DialogFocused
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (a *appModel) renderBody(f frame) []string {
	d := f.dialog
	if f.input == nil {
		return a.body.Render(dom.InnerHTML(d.Body()), f.body.W, f.body.H)
	}
	label := strings.TrimSpace(dom.TextContent(dom.First(d.Body(), "label")))
	field := a.input
	if f.input.node != a.inputNode {
		field = textinput.New()
		field.Prompt = a.input.Prompt
		field.SetStyles(styles.CurrentTheme().S().TextInput)
		field.SetValue(dom.Value(f.input.node))
	}
	field.SetWidth(max(1, f.input.rect.W-lipgloss.Width(field.Prompt)-1))
	return []string{label, " " + field.View()}
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
