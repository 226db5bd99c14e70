// Package rtlog adapts the standard library log.Logger to the three-level
// verbosity knob in rtconfig (silent, warnings, verbose): plain stdlib "log"
// calls at call sites rather than a structured logging framework.
package rtlog

import (
	"log"
	"os"
)

// Verbosity controls which calls actually reach the underlying logger.
type Verbosity int

const (
	// Silent suppresses all output.
	Silent Verbosity = iota
	// Warnings emits only Warnf calls.
	Warnings
	// Verbose emits both Warnf and Infof calls.
	Verbose
)

// Logger is a leveled wrapper around *log.Logger.
type Logger struct {
	verbosity Verbosity
	std       *log.Logger
}

// New returns a Logger writing to stderr with the given verbosity.
func New(v Verbosity) *Logger {
	return &Logger{verbosity: v, std: log.New(os.Stderr, "", log.LstdFlags)}
}

// Nop returns a Logger that never writes anything, for tests and for
// embedders who want the core silent by default.
func Nop() *Logger {
	return &Logger{verbosity: Silent, std: log.New(os.Stderr, "", 0)}
}

// Warnf logs at the "warnings" level, e.g. the policy-rejected-bridge notice
// in §4.4 step 3 of the scoring contract.
func (l *Logger) Warnf(format string, args ...interface{}) {
	if l == nil || l.verbosity < Warnings {
		return
	}
	l.std.Printf("WARN "+format, args...)
}

// Infof logs at the "verbose" level only.
func (l *Logger) Infof(format string, args ...interface{}) {
	if l == nil || l.verbosity < Verbose {
		return
	}
	l.std.Printf("INFO "+format, args...)
}
