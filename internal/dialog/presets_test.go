package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumosx/loft/internal/dom"
	"github.com/yumosx/loft/internal/events"
)

func footerButtons(t *testing.T, d *Dialog) []*dom.PointerEvent {
	t.Helper()
	var out []*dom.PointerEvent
	for _, n := range dom.Children(d.Footer()) {
		out = append(out, dom.NewPointerEvent("click", 0, 0, n))
	}
	return out
}

func TestConfirm_Decline(t *testing.T) {
	t.Parallel()

	_, m, opts := sandbox()
	var answers []bool
	d := Confirm("Are you sure?", "T", func(yes bool) {
		answers = append(answers, yes)
	}, opts...)

	require.True(t, d.IsOpened())
	require.True(t, d.Modal())
	assert.Equal(t, "T", dom.TextContent(d.Title()))
	assert.Contains(t, dom.TextContent(d.Body()), "Are you sure?")

	buttons := footerButtons(t, d)
	require.Len(t, buttons, 2)
	d.Dispatch(buttons[1])

	assert.Equal(t, []bool{false}, answers)
	assert.True(t, d.Destructed())
	assert.False(t, d.IsOpened())
	assert.Empty(t, m.Dialogs())

	// A second click on the detached button reaches nothing.
	d.Dispatch(dom.NewPointerEvent("click", 0, 0, buttons[1].Target))
	assert.Equal(t, []bool{false}, answers)
}

func TestConfirm_Accept(t *testing.T) {
	t.Parallel()

	_, _, opts := sandbox()
	var answers []bool
	d := Confirm("Proceed?", "", func(yes bool) {
		answers = append(answers, yes)
	}, opts...)

	assert.Equal(t, "\u00a0", dom.TextContent(d.Title()))
	assert.Same(t, dom.Children(d.Footer())[0], d.Focused())

	d.Dispatch(footerButtons(t, d)[0])
	assert.Equal(t, []bool{true}, answers)
	assert.True(t, d.Destructed())
}

func TestConfirm_SubmitAccepts(t *testing.T) {
	t.Parallel()

	_, _, opts := sandbox()
	var answers []bool
	d := Confirm("Proceed?", "T", func(yes bool) {
		answers = append(answers, yes)
	}, opts...)

	form := dom.First(d.Body(), "form")
	require.NotNil(t, form)
	d.Dispatch(dom.NewPointerEvent("submit", 0, 0, form))
	assert.Equal(t, []bool{true}, answers)
}

func TestAlert(t *testing.T) {
	t.Parallel()

	_, _, opts := sandbox()
	var calls int
	d := Alert("File was uploaded", "Message", func(got *Dialog) error {
		calls++
		return nil
	}, "", opts...)

	require.True(t, d.IsOpened())
	require.NotNil(t, dom.First(d.Body(), ".loft_alert"))
	assert.Equal(t, "File was uploaded", dom.TextContent(d.Body()))

	d.Dispatch(footerButtons(t, d)[0])
	assert.Equal(t, 1, calls)
	assert.True(t, d.Destructed())
}

func TestAlert_MessageMarkup(t *testing.T) {
	t.Parallel()

	_, _, opts := sandbox()
	d := Alert("<b>Saved</b> to disk", "", nil, "", opts...)

	bold := dom.First(d.Body(), ".loft_alert b")
	require.NotNil(t, bold)
	assert.Equal(t, "Saved", dom.TextContent(bold))
	assert.Equal(t, "Saved to disk", dom.TextContent(d.Body()))

	p := Prompt("<i>New</i> name", "", nil, "", opts...)
	require.NotNil(t, dom.First(p.Body(), "label i"))
}

func TestAlert_Veto(t *testing.T) {
	t.Parallel()

	_, _, opts := sandbox()
	veto := true
	d := Alert("Not yet", "", func(*Dialog) error {
		if veto {
			return events.ErrVeto
		}
		return nil
	}, "custom_alert", opts...)
	require.NotNil(t, dom.First(d.Body(), ".custom_alert"))

	ok := dom.Children(d.Footer())[0]
	d.Dispatch(dom.NewPointerEvent("click", 0, 0, ok))
	require.True(t, d.IsOpened())

	veto = false
	d.Dispatch(dom.NewPointerEvent("click", 0, 0, ok))
	assert.True(t, d.Destructed())
}

func TestAlert_NoCallback(t *testing.T) {
	t.Parallel()

	_, _, opts := sandbox()
	d := Alert("Hi", "", nil, "", opts...)
	d.Dispatch(footerButtons(t, d)[0])
	assert.True(t, d.Destructed())
}

func TestPrompt(t *testing.T) {
	t.Parallel()

	_, _, opts := sandbox()
	var values []string
	d := Prompt("Enter your name", "Prompt", func(v string) error {
		values = append(values, v)
		if len(v) < 3 {
			return events.ErrVeto
		}
		return nil
	}, "name", opts...)

	input := d.Focused()
	require.NotNil(t, input)
	require.True(t, dom.IsInputLike(input))
	placeholder, _ := dom.Attr(input, "placeholder")
	assert.Equal(t, "name", placeholder)

	dom.SetValue(input, "ab")
	d.Dispatch(footerButtons(t, d)[0])
	require.True(t, d.IsOpened())

	dom.SetValue(input, "abc")
	submit := dom.NewPointerEvent("submit", 0, 0, dom.First(d.Body(), "form"))
	d.Dispatch(submit)
	assert.True(t, submit.DefaultPrevented())
	assert.Equal(t, []string{"ab", "abc"}, values)
	assert.True(t, d.Destructed())
}

func TestPrompt_Cancel(t *testing.T) {
	t.Parallel()

	_, _, opts := sandbox()
	var called bool
	d := Prompt("Name?", "", func(string) error {
		called = true
		return nil
	}, "", opts...)

	_, hasPlaceholder := dom.Attr(d.Focused(), "placeholder")
	assert.False(t, hasPlaceholder)

	d.Dispatch(footerButtons(t, d)[1])
	assert.False(t, called)
	assert.True(t, d.Destructed())
}

func TestPresets_UseDefaultMount(t *testing.T) {
	d := Alert("default", "", nil, "")
	defer d.Destruct()

	owner, ok := DefaultMount().Owner(d.Body())
	require.True(t, ok)
	assert.Same(t, d, owner)
	assert.Same(t, DefaultDocument().Window, d.Window())
}
