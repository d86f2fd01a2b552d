package dialog

import (
	"errors"
	"html"
	"log/slog"

	xhtml "golang.org/x/net/html"

	"github.com/yumosx/loft/internal/dom"
	"github.com/yumosx/loft/internal/events"
	"github.com/yumosx/loft/internal/icons"
)

// nbsp stands in for an empty preset title so the header keeps its height.
const nbsp = "&nbsp;"

func (d *Dialog) button(icon, label, class string) *xhtml.Node {
	return dom.Build(`<a href="#" class="loft_button ` + class + `">` +
		icons.Markup(icon) + `<span>` + html.EscapeString(d.catalog.T(label)) + `</span></a>`)
}

func presetTitle(title string) Content {
	if title == "" {
		return HTML(nbsp)
	}
	return HTML(html.EscapeString(title))
}

// message parses msg as markup, plain text stays a text node.
func message(msg string) *xhtml.Node {
	return dom.Build(msg)
}

// Alert shows a message with a single acknowledgement button. cb runs when
// the button is clicked and keeps the dialog open by returning
// events.ErrVeto. className defaults to loft_alert.
func Alert(msg, title string, cb func(*Dialog) error, className string, opts ...Option) *Dialog {
	if className == "" {
		className = "loft_alert"
	}
	d := New(nil, opts...)

	div := dom.Element("div")
	dom.AddClass(div, className)
	div.AppendChild(message(msg))

	ok := d.button("cancel", "Ok", "loft_button_ok")
	d.events.On(ok, "click", func(...any) error {
		if cb != nil {
			if err := cb(d); errors.Is(err, events.ErrVeto) {
				return nil
			} else if err != nil {
				slog.Error("Alert callback failed", "error", err)
			}
		}
		d.Close()
		return nil
	})

	d.SetFooter(Nodes(ok))
	d.Open(Nodes(div), presetTitle(title), true, true)
	d.Focus(ok)
	return d
}

// Prompt asks for a line of text. cb receives the input value when the OK
// button is clicked or the form is submitted, and keeps the dialog open by
// returning events.ErrVeto.
func Prompt(msg, title string, cb func(value string) error, placeholder string, opts ...Option) *Dialog {
	d := New(nil, opts...)

	form := dom.Build(`<form class="loft_prompt"></form>`)
	label := dom.Element("label")
	label.AppendChild(message(msg))
	input := dom.Element("input")
	dom.SetAttr(input, "autofocus", "")
	if placeholder != "" {
		dom.SetAttr(input, "placeholder", placeholder)
	}
	form.AppendChild(label)
	form.AppendChild(input)

	ok := d.button("check", "Ok", "loft_button_ok")
	cancel := d.button("cancel", "Cancel", "loft_button_cancel")

	submit := func(args ...any) error {
		if len(args) > 0 {
			if ev, isEvent := args[0].(dom.Eventer); isEvent {
				ev.Base().PreventDefault()
			}
		}
		if cb != nil {
			if err := cb(dom.Value(input)); errors.Is(err, events.ErrVeto) {
				return nil
			} else if err != nil {
				slog.Error("Prompt callback failed", "error", err)
			}
		}
		d.Close()
		return nil
	}
	d.events.
		On(ok, "click", submit).
		On(form, "submit", submit).
		On(cancel, "click", d.CloseHandler)

	d.SetFooter(Nodes(ok, cancel))
	d.Open(Nodes(form), presetTitle(title), true, true)
	d.Focus(input)
	return d
}

// Confirm asks a yes or no question. cb receives the answer; the dialog
// closes either way.
func Confirm(msg, title string, cb func(yes bool), opts ...Option) *Dialog {
	d := New(nil, opts...)

	form := dom.Build(`<form class="loft_prompt"></form>`)
	label := dom.Element("label")
	label.AppendChild(message(msg))
	form.AppendChild(label)

	answer := func(yes bool) events.Handler {
		return func(args ...any) error {
			if len(args) > 0 {
				if ev, isEvent := args[0].(dom.Eventer); isEvent {
					ev.Base().PreventDefault()
				}
			}
			if cb != nil {
				cb(yes)
			}
			d.Close()
			return nil
		}
	}

	ok := d.button("check", "Yes", "loft_button_ok")
	cancel := d.button("cancel", "Cancel", "loft_button_cancel")
	d.events.
		On(ok, "click", answer(true)).
		On(form, "submit", answer(true)).
		On(cancel, "click", answer(false))

	d.SetFooter(Nodes(ok, cancel))
	d.Open(Nodes(form), presetTitle(title), true, true)
	d.Focus(ok)
	return d
}
