package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/yumosx/loft/internal/env"
	"github.com/yumosx/loft/internal/fsext"
)

// ConfigPaths returns the files merged by Load, lowest priority first: the
// global file, the file named by LOFT_CONFIG, then loft.json and .loft.json
// in the working directory.
func ConfigPaths(workingDir string) []string {
	return configPaths(workingDir, env.New())
}

func configPaths(workingDir string, e env.Env) []string {
	paths := []string{globalConfig(e)}
	if extra := e.Get("LOFT_CONFIG"); extra != "" {
		expanded, err := fsext.Expand(extra, e)
		if err != nil {
			slog.Warn("Could not expand LOFT_CONFIG, using it as is", "path", extra, "error", err)
			expanded = extra
		}
		paths = append(paths, expanded)
	}
	return append(paths,
		filepath.Join(workingDir, fmt.Sprintf("%s.json", appName)),
		filepath.Join(workingDir, fmt.Sprintf(".%s.json", appName)),
	)
}

// LocalConfig returns the project file `loft bind` writes to.
func LocalConfig(workingDir string) string {
	return filepath.Join(workingDir, fmt.Sprintf("%s.json", appName))
}

// GlobalConfig returns the path of the user wide configuration file.
func GlobalConfig() string {
	return globalConfig(env.New())
}

func globalConfig(e env.Env) string {
	xdgConfigHome := e.Get("XDG_CONFIG_HOME")
	if xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName, fmt.Sprintf("%s.json", appName))
	}

	// return the path to the main config directory
	// for windows, it should be in `%LOCALAPPDATA%/loft/`
	// for linux and macOS, it should be in `$HOME/.config/loft/`
	if runtime.GOOS == "windows" {
		localAppData := e.Get("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(e.Get("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, fmt.Sprintf("%s.json", appName))
	}

	return filepath.Join(homeDir(e), ".config", appName, fmt.Sprintf("%s.json", appName))
}

func HomeDir() string {
	return homeDir(env.New())
}

func homeDir(e env.Env) string {
	homeDir := e.Get("HOME")
	if homeDir == "" {
		homeDir = e.Get("USERPROFILE") // For Windows compatibility
	}
	if homeDir == "" {
		homeDir = e.Get("HOMEPATH") // Fallback for some environments
	}
	return homeDir
}

// dataDirectory resolves the configured data directory against the
// working directory after expanding variables in it.
func dataDirectory(workingDir, dir string, e env.Env) string {
	if expanded, err := fsext.Expand(dir, e); err == nil && expanded != "" {
		dir = expanded
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(workingDir, dir)
	}
	return dir
}
