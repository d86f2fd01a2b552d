package toolbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumosx/loft/internal/dom"
	"github.com/yumosx/loft/internal/events"
	"github.com/yumosx/loft/internal/i18n"
)

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	var got []any
	Register("test.ping", Control{
		Icon:  "check",
		Label: "Yes",
		Exec: func(view any) error {
			got = append(got, view)
			return nil
		},
	})

	bus := events.New()
	node := dom.Element("div")
	buttons := NewBuilder(i18n.New("de"), false).Build([]string{"test.ping", "test.missing"}, node, "view", bus)
	require.Len(t, buttons, 1)
	require.Len(t, dom.Children(node), 1)

	btn := buttons[0]
	control, _ := dom.Attr(btn, "data-control")
	title, _ := dom.Attr(btn, "title")
	assert.Equal(t, "test.ping", control)
	assert.Equal(t, "Ja", title)
	assert.True(t, dom.HasClass(btn, "loft_toolbar_button_test_ping"))
	assert.Equal(t, "✓", dom.TextContent(btn))

	ev := dom.NewPointerEvent("click", 0, 0, btn)
	require.NoError(t, bus.Fire(btn, "click", ev))
	assert.Equal(t, []any{"view"}, got)
	assert.True(t, ev.PropagationStopped())
	assert.True(t, ev.DefaultPrevented())
}

func TestBuilder_TextIcons(t *testing.T) {
	t.Parallel()

	Register("test.text", Control{Icon: "cancel", Label: "Close"})

	node := dom.Element("div")
	buttons := NewBuilder(i18n.New("en"), true).Build([]string{"test.text"}, node, nil, events.New())
	require.Len(t, buttons, 1)
	assert.Equal(t, "Close", dom.TextContent(buttons[0]))
}
