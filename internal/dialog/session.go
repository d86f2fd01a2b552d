package dialog

import (
	"github.com/yumosx/loft/internal/dom"
	"github.com/yumosx/loft/internal/keys"
)

func pointerEvent(args []any) *dom.PointerEvent {
	if len(args) == 0 {
		return nil
	}
	ev, _ := args[0].(*dom.PointerEvent)
	return ev
}

func (d *Dialog) lockSelect() {
	dom.AddClass(d.container, "loft_dialog_box-moved")
}

func (d *Dialog) unlockSelect() {
	dom.RemoveClass(d.container, "loft_dialog_box-moved")
}

// Dragging reports whether a drag session is active.
func (d *Dialog) Dragging() bool { return d.mode == sessionDrag }

// Resizing reports whether a resize session is active.
func (d *Dialog) Resizing() bool { return d.mode == sessionResize }

func (d *Dialog) onHeaderMouseDown(args ...any) error {
	ev := pointerEvent(args)
	if ev == nil || d.destructed || !d.options.Draggable {
		return nil
	}
	if dom.IsInputLike(ev.Target) {
		return nil
	}

	left, top, ok := d.Position()
	if !ok {
		left, top = d.center()
	}
	d.mode = sessionDrag
	d.anchor = anchor{
		pointerX: ev.ClientX,
		pointerY: ev.ClientY,
		left:     left,
		top:      top,
	}

	d.SetMaxZIndex()
	ev.PreventDefault()
	d.lockSelect()

	_ = d.fire(d, "startMove")
	return nil
}

func (d *Dialog) onResizerMouseDown(args ...any) error {
	ev := pointerEvent(args)
	if ev == nil || d.destructed || !d.options.Resizable {
		return nil
	}

	w, h := d.Size()
	d.mode = sessionResize
	d.anchor = anchor{
		pointerX: ev.ClientX,
		pointerY: ev.ClientY,
		width:    w,
		height:   h,
	}
	ev.PreventDefault()
	d.lockSelect()

	_ = d.fire(d, "startResize")
	return nil
}

// onMouseMove derives the geometry from the session anchor and the total
// pointer delta, never from the previous move.
func (d *Dialog) onMouseMove(args ...any) error {
	ev := pointerEvent(args)
	if ev == nil || d.destructed {
		return nil
	}
	dx := ev.ClientX - d.anchor.pointerX
	dy := ev.ClientY - d.anchor.pointerY

	switch {
	case d.mode == sessionDrag && d.options.Draggable:
		d.SetPosition(d.anchor.left+dx, d.anchor.top+dy)
		_ = d.fire(d, "move", dx, dy)
	case d.mode == sessionResize && d.options.Resizable:
		d.SetSize(Px(d.anchor.width+dx), Px(d.anchor.height+dy))
		_ = d.fire(d, "resizeDialog", dx, dy)
	default:
		return nil
	}

	ev.StopImmediatePropagation()
	ev.PreventDefault()
	d.events.StopPropagation("mousemove")
	return nil
}

func (d *Dialog) onMouseUp(...any) error {
	if d.mode == sessionNone || d.destructed {
		return nil
	}
	d.mode = sessionNone
	d.unlockSelect()
	_ = d.fire(d, "endResize endMove")
	return nil
}

// onKeyDown closes the topmost open dialog of the mount on Escape. Only the
// first open dialog to see the key reacts.
func (d *Dialog) onKeyDown(args ...any) error {
	if len(args) == 0 || !d.IsOpened() {
		return nil
	}
	ev, ok := args[0].(*dom.KeyboardEvent)
	if !ok || ev.Which != keys.CodeEsc {
		return nil
	}
	d.MaxZIndexDialog().Close()
	ev.StopImmediatePropagation()
	d.events.StopPropagation("keydown")
	return nil
}

func (d *Dialog) onResize(...any) error {
	if d.options.Resizable && !d.moved && !d.hasOffset && d.IsOpened() {
		d.Center()
	}
	return nil
}
