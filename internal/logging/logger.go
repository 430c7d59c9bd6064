package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type level int

const (
	levelVerbose level = iota
	levelInfo
	levelError
)

func (l level) tag() string {
	switch l {
	case levelVerbose:
		return "debug: "
	case levelError:
		return "error: "
	}
	return ""
}

// Logger writes projgen diagnostics to a writer.
// Safe for concurrent use by multiple goroutines.
type Logger struct {
	w       io.Writer
	verbose bool
	scope   string
	mu      *sync.Mutex
}

// New returns a Logger writing to w. Verbose messages are dropped unless
// verbose is set.
func New(w io.Writer, verbose bool) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{w: w, verbose: verbose, mu: &sync.Mutex{}}
}

// NewConsoleLogger returns a Logger writing to stderr.
func NewConsoleLogger(verbose bool) *Logger {
	return New(os.Stderr, verbose)
}

// NewNullLogger returns a Logger that discards everything.
func NewNullLogger() *Logger {
	return New(io.Discard, false)
}

// With returns a Logger that prefixes each line with scope, typically a
// project or solution file name. Nested scopes are joined with '/'.
func (l *Logger) With(scope string) *Logger {
	child := *l
	if l.scope != "" && scope != "" {
		child.scope = l.scope + "/" + scope
	} else if scope != "" {
		child.scope = scope
	}
	return &child
}

// Verbose logs detailed diagnostics when verbose output is enabled.
func (l *Logger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.log(levelVerbose, format, args)
}

// Info logs progress of normal operations.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(levelInfo, format, args)
}

// Error logs failures that did not abort the current pass.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(levelError, format, args)
}

func (l *Logger) log(lv level, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	line := lv.tag()
	if l.scope != "" {
		line += l.scope + ": "
	}
	line += msg + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, line)
}
