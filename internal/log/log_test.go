package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, false))
	logger.Debug("hidden")
	logger.Info("shown", "dialog", "d1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "d1", entry["dialog"])
	assert.Contains(t, entry, "source")

	buf.Reset()
	slog.New(newHandler(&buf, true)).Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestRecoverPanic(t *testing.T) {
	panicDir.Store(t.TempDir())

	cleaned := false
	func() {
		defer RecoverPanic("test", func() { cleaned = true })
		panic("boom")
	}()
	require.True(t, cleaned)

	entries, err := os.ReadDir(panicDir.Load().(string))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "loft-panic-test-")
}
