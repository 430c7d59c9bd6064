package testing

import (
	"fmt"
	"sync"
)

// RecordingLogger is a projgen.Logger that keeps every formatted message.
type RecordingLogger struct {
	mu       sync.Mutex
	verbose  []string
	info     []string
	errorLog []string
}

func (l *RecordingLogger) Verbose(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = append(l.verbose, fmt.Sprintf(format, args...))
}

func (l *RecordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *RecordingLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorLog = append(l.errorLog, fmt.Sprintf(format, args...))
}

// VerboseMessages returns a copy of the verbose messages.
func (l *RecordingLogger) VerboseMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.verbose...)
}

// InfoMessages returns a copy of the info messages.
func (l *RecordingLogger) InfoMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.info...)
}

// ErrorMessages returns a copy of the error messages.
func (l *RecordingLogger) ErrorMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.errorLog...)
}
