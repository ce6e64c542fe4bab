package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	charmlog "github.com/charmbracelet/log/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
)

// Setup sends the default logger to a rotating JSON log file. Only the first
// call has an effect.
func Setup(logFile string, debug bool) {
	initOnce.Do(func() {
		logRotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // Max size in MB
			MaxBackups: 0,
			MaxAge:     30, // Days
			Compress:   false,
		}

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}

		logger := slog.NewJSONHandler(logRotator, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})

		slog.SetDefault(slog.New(logger))
		initialized.Store(true)
	})
}

// SetupConsole sends the default logger to w, for commands that do not take
// over the terminal.
func SetupConsole(w io.Writer, debug bool) {
	level := charmlog.InfoLevel
	if debug {
		level = charmlog.DebugLevel
	}
	logger := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		ReportTimestamp: debug,
	})
	slog.SetDefault(slog.New(logger))
}

func Initialized() bool {
	return initialized.Load()
}

// RecoverPanic logs a panic in a goroutine, writes the stack trace to a
// file and runs cleanup.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		slog.Error("Panic", "name", name, "error", r)

		timestamp := time.Now().Format("20060102-150405")
		filename := fmt.Sprintf("vlist-panic-%s-%s.log", name, timestamp)

		file, err := os.Create(filename)
		if err == nil {
			defer file.Close()
			fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
			fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
			fmt.Fprintf(file, "Stack Trace:\n%s\n", debug.Stack())
		}

		if cleanup != nil {
			cleanup()
		}
	}
}
