package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher reloads the configuration when one of its files changes.
type Watcher struct {
	cfg      *Config
	onChange func(*Config)
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for the files cfg was loaded from. onChange
// receives each successfully reloaded configuration; invalid files are
// logged and the previous configuration stays in place.
func NewWatcher(cfg *Config, onChange func(*Config)) *Watcher {
	return &Watcher{
		cfg:      cfg,
		onChange: onChange,
		debounce: defaultDebounce,
	}
}

// Current returns the last configuration the watcher loaded.
func (w *Watcher) Current() *Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg
}

// Run watches until ctx is done. Directories are watched instead of the
// files themselves so editors that replace files on save keep working.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	paths := w.Current().Paths()
	var dirs []string
	for _, path := range paths {
		dir := filepath.Dir(path)
		if slices.Contains(dirs, dir) {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			slog.Error("Error watching config directory", "path", dir, "error", err)
			continue
		}
		dirs = append(dirs, dir)
	}
	slog.Debug("Watching configuration", "dirs", dirs)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !slices.Contains(paths, event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("Config file event", "path", event.Name, "operation", event.Op.String())
			w.schedule()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Error watching config", "error", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) reload() {
	next, err := Reload(w.Current())
	if err != nil {
		slog.Error("Error reloading config", "error", err)
		return
	}
	w.mu.Lock()
	w.cfg = next
	w.mu.Unlock()
	slog.Info("Configuration reloaded")
	if w.onChange != nil {
		w.onChange(next)
	}
}
