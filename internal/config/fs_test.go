package config

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yumosx/loft/internal/env"
)

func TestConfigPaths(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("paths below are unix style")
	}

	work := filepath.Join("/", "work")
	e := env.NewFromMap(map[string]string{
		"HOME":        "/home/loft",
		"SHARED":      "/srv/shared",
		"LOFT_CONFIG": "$SHARED/loft.json",
	})
	assert.Equal(t, []string{
		"/home/loft/.config/loft/loft.json",
		"/srv/shared/loft.json",
		"/work/loft.json",
		"/work/.loft.json",
	}, configPaths(work, e))

	e = env.NewFromMap(map[string]string{
		"HOME":            "/home/loft",
		"XDG_CONFIG_HOME": "/xdg",
	})
	assert.Equal(t, []string{
		"/xdg/loft/loft.json",
		"/work/loft.json",
		"/work/.loft.json",
	}, configPaths(work, e))
}

func TestDataDirectory(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("paths below are unix style")
	}

	e := env.NewFromMap(map[string]string{"STATE": "/var/state"})
	assert.Equal(t, "/work/.loft", dataDirectory("/work", ".loft", e))
	assert.Equal(t, "/var/state/loft", dataDirectory("/work", "$STATE/loft", e))
	assert.Equal(t, "/abs", dataDirectory("/work", "/abs", e))
}
