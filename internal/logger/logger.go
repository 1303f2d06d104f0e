// Package logger provides a lightweight, centralized logging facility
// with configurable verbosity levels.
//
// Design goals:
//   - Simple API (Errorf, Infof, Debugf, Tracef)
//   - Centralized verbosity control
//   - Zero formatting logic at call sites
//   - Structured fields when a call site has them (WithFields)
//
// Verbosity levels (in increasing order):
//
//	Error < Info < Debug < Trace
//
// Output is produced by a single logrus logger writing to stderr, so
// logs stay separate from the report printed on stdout.
//
// Example usage:
//
//	logger.SetVerbosity(2) // Debug
//	logger.Infof("starting run")
//	logger.WithFields(logger.Fields{"paths": 50000}).Debugf("simulating")
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Level represents a logging verbosity level.
// Higher values mean more verbose logging.
type Level int

const (
	Error Level = iota // Error logs only critical failures.
	Info               // Info logs high-level application progress.
	Debug              // Debug logs detailed diagnostic information.
	Trace              // Trace logs very fine-grained execution details.
)

// Fields is a set of structured key/value pairs attached to a message.
type Fields = logrus.Fields

// std is the logger every function in this package writes to.
var std = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetVerbosity sets the global logging verbosity.
// Typically called once during application startup
// (e.g. after parsing CLI flags). Out-of-range values are clamped.
func SetVerbosity(v int) {
	std.SetLevel(toLogrus(Level(v)))
}

// Verbosity returns the active verbosity level.
func Verbosity() Level {
	switch std.GetLevel() {
	case logrus.TraceLevel:
		return Trace
	case logrus.DebugLevel:
		return Debug
	case logrus.InfoLevel, logrus.WarnLevel:
		return Info
	default:
		return Error
	}
}

// SetOutput redirects log output, e.g. to a buffer in tests.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func toLogrus(l Level) logrus.Level {
	switch {
	case l <= Error:
		return logrus.ErrorLevel
	case l == Info:
		return logrus.InfoLevel
	case l == Debug:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}

// WithFields returns an entry carrying fields; it logs with the same
// verbosity rules as the package-level functions.
func WithFields(f Fields) *logrus.Entry {
	return std.WithFields(f)
}

// Errorf logs an error-level message.
// Use this for failures that require attention.
func Errorf(format string, args ...any) {
	std.Errorf(format, args...)
}

// Infof logs an informational message.
// Use this for major lifecycle events.
func Infof(format string, args ...any) {
	std.Infof(format, args...)
}

// Debugf logs debugging information.
// Use this for diagnostic output useful during development.
func Debugf(format string, args ...any) {
	std.Debugf(format, args...)
}

// Tracef logs very detailed execution traces.
// Use this sparingly due to high volume.
func Tracef(format string, args ...any) {
	std.Tracef(format, args...)
}

// Fatalf logs an error-level message and exits with status 1.
func Fatalf(format string, args ...any) {
	std.Fatalf(format, args...)
}
