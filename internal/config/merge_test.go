package config

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	global := strings.NewReader(`{"options": {"debug": true}, "command_to_hotkeys": {"quit": "ctrl+q"}}`)
	local := strings.NewReader(`{"command_to_hotkeys": {"about": "f2"}}`)

	merged, err := Merge([]io.Reader{global, local})
	require.NoError(t, err)

	got, err := io.ReadAll(merged)
	require.NoError(t, err)
	require.JSONEq(t, `{"options":{"debug":true},"command_to_hotkeys":{"quit":"ctrl+q","about":"f2"}}`, string(got))
}
