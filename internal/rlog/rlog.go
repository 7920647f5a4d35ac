// Package rlog provides the leveled logger the core's build and render
// stages write diagnostics through, wrapping github.com/op/go-logging.
package rlog

import (
	"io"
	"os"

	logging "github.com/op/go-logging"
)

// Logger is the interface the core accepts; render/build code never
// depends on op/go-logging directly, only on this shape.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// New creates a named logger; the name shows up as op-logging's %{module}.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all loggers created via New to sink.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(logging.INFO, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel adjusts global verbosity.
func SetLevel(level logging.Level) {
	leveledBackend.SetLevel(level, "")
}

// Discard silences all logging, used by tests that exercise the build path
// without wanting diagnostic noise.
func Discard() Logger {
	l := logging.MustGetLogger("discard")
	l.SetBackend(logging.AddModuleLevel(logging.NewLogBackend(io.Discard, "", 0)))
	return l
}

func init() {
	SetSink(os.Stdout)
	SetLevel(logging.NOTICE)
}
