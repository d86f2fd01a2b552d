// Package log routes slog output to a rotating file so it never draws over
// the terminal UI.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
	panicDir    atomic.Value
)

// Setup installs a JSON slog handler writing to logFile. Only the first
// call has an effect.
func Setup(logFile string, debug bool) {
	initOnce.Do(func() {
		logRotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // MB
			MaxBackups: 0,
			MaxAge:     30, // days
			Compress:   false,
		}
		panicDir.Store(filepath.Dir(logFile))
		slog.SetDefault(slog.New(newHandler(logRotator, debug)))
		initialized.Store(true)
	})
}

func newHandler(w io.Writer, debug bool) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})
}

func Initialized() bool {
	return initialized.Load()
}

// RecoverPanic writes a loft-panic-<name>-<time>.log file next to the log
// file, or in the working directory before Setup, then runs cleanup. It
// must be deferred directly.
func RecoverPanic(name string, cleanup func()) {
	r := recover()
	if r == nil {
		return
	}
	writePanic(name, r, debug.Stack())
	if cleanup != nil {
		cleanup()
	}
}

func writePanic(name string, r any, stack []byte) string {
	dir, _ := panicDir.Load().(string)
	timestamp := time.Now().Format("20060102-150405")
	filename := filepath.Join(dir, fmt.Sprintf("loft-panic-%s-%s.log", name, timestamp))

	file, err := os.Create(filename)
	if err != nil {
		slog.Error("Failed to write panic log", "name", name, "panic", r, "error", err)
		return ""
	}
	defer file.Close()

	fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
	fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "Stack Trace:\n%s\n", stack)
	return filename
}
