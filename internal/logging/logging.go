// Package logging builds the leveled console logger used across taskpad.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is printed before every log line.
const Prefix = "taskpad"

// Options holds configuration for the console logger.
type Options struct {
	Debug           bool
	ReportTimestamp bool
	Formatter       log.Formatter
}

// New creates a logger writing to w. Debug output is enabled only when
// opts.Debug is set; otherwise warnings and errors are shown.
func New(w io.Writer, opts Options) *log.Logger {
	level := log.WarnLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
