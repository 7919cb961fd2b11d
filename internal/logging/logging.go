// Package logging sets up the process logger. Every record is written to the
// console and appended to a daily log file, which together form the audit
// trail of all operations.
package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

const (
	// HandlerConsole is the [SlogManager] name of the console handler.
	HandlerConsole = "console"

	// HandlerFile is the [SlogManager] name of the log file handler.
	HandlerFile = "file"

	fileTimeFormat = "2006-01-02 15:04:05"
)

// NewConsoleHandler returns a colored handler for interactive output.
func NewConsoleHandler(w io.Writer, level slog.Level) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
}

// NewFileHandler returns an uncolored handler with full timestamps, suitable
// for the daily log file.
func NewFileHandler(w io.Writer, level slog.Level) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: fileTimeFormat,
		NoColor:    true,
	})
}

// NewManager returns a [SlogManager] with the console handler writing to
// console and, if file is not nil, the file handler writing to file.
func NewManager(console io.Writer, file io.Writer, level slog.Level) *SlogManager {
	manager := NewSlogManager()
	manager.AddHandler(HandlerConsole, NewConsoleHandler(console, level))

	if file != nil {
		manager.AddHandler(HandlerFile, NewFileHandler(file, level))
	}

	return manager
}
