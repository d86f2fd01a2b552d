package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/exp/golden"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumosx/loft/internal/config"
)

func TestWriteBindings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := writeBindings(&buf, map[string][]string{
		"quit":      {"q+ctrl", "c+ctrl"},
		"about":     {"f1"},
		"newDialog": {"n+ctrl"},
	}, false)
	require.NoError(t, err)
	golden.RequireEqual(t, buf.Bytes())
}

func TestBind(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "loft.json")
	combos, err := bind(path, "newDialog", []string{"ctrl+n, f3", "cmd+N"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"n+ctrl", "f3", "n+meta"}, combos)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := config.LoadReader(f)
	require.NoError(t, err)
	assert.Equal(t, combos, cfg.CommandToHotkeys["newDialog"].Combos())

	_, err = bind(path, "newDialog", nil, true)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "newDialog")
}

func TestBindRejectsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "loft.json")
	_, err := bind(path, "about", nil, false)
	require.Error(t, err)
	_, err = bind(path, "about", []string{", "}, false)
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestConfigSchema(t *testing.T) {
	t.Parallel()

	bts, err := json.Marshal(configSchema())
	require.NoError(t, err)
	out := string(bts)
	assert.Contains(t, out, `"command_to_hotkeys"`)
	assert.Contains(t, out, `"dialog"`)
	assert.Contains(t, out, `"Loft Configuration"`)
}
