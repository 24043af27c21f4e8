// Package logging provides the leveled logger used across the pipeline: a
// thin wrapper over the standard library's log.Logger with the two level
// names (WARN/INFO) the ingest error policy distinguishes.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level names a log severity.
type Level string

const (
	Warn Level = "WARN"
	Info Level = "INFO"
)

// Logger is a minimal leveled wrapper over *log.Logger.
type Logger struct {
	out *log.Logger
}

// New returns a Logger writing to w with the standard date/time prefix.
func New(w io.Writer) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags)}
}

// Default writes to os.Stderr, matching the CLI's default behavior.
func Default() *Logger {
	return New(os.Stderr)
}

func (l *Logger) log(level Level, format string, args ...any) {
	l.out.Printf("%s %s", level, fmt.Sprintf(format, args...))
}

// Warnf logs at WARN — extraction failures, missing indexes, and embedder
// identifier mismatches.
func (l *Logger) Warnf(format string, args ...any) { l.log(Warn, format, args...) }

// Infof logs at INFO — partial parses and encoding fallbacks.
func (l *Logger) Infof(format string, args ...any) { l.log(Info, format, args...) }
