// Package filesync persists generated text only when it differs from what is
// already on disk.
package filesync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/vvka-141/projgen/internal/checksum"
	"github.com/vvka-141/projgen/internal/files/filesystem"
	"github.com/vvka-141/projgen/internal/hooks"
	"github.com/vvka-141/projgen/internal/retry"
	"github.com/vvka-141/projgen/pkg/projgen"
)

// Kind selects which post-processing hooks apply to a file.
type Kind int

const (
	KindProject Kind = iota
	KindSolution
)

func (k Kind) String() string {
	if k == KindSolution {
		return "solution"
	}
	return "project"
}

// Outcome records what happened to one generated file.
type Outcome struct {
	Path     string
	Kind     Kind
	Written  bool
	Checksum string
}

// Synchronizer writes generated files through a FileSystemProvider.
// Not safe for concurrent use; the orchestrator serializes passes.
type Synchronizer struct {
	fs         filesystem.FileSystemProvider
	hooks      *hooks.Registry
	calculator checksum.Calculator
	logger     projgen.Logger
	retry      *retry.Executor
	dryRun     bool
}

// New creates a synchronizer. A nil registry means no post-processing.
// Panics if fsProvider or logger is nil.
func New(fsProvider filesystem.FileSystemProvider, registry *hooks.Registry, logger projgen.Logger) *Synchronizer {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if registry == nil {
		registry = hooks.NewRegistry()
	}
	return &Synchronizer{
		fs:         fsProvider,
		hooks:      registry,
		calculator: checksum.New(),
		logger:     logger,
		retry:      retry.NewFileWriteExecutor(),
	}
}

// SetDryRun makes the synchronizer report what it would write without
// touching the disk.
func (s *Synchronizer) SetDryRun(dryRun bool) {
	s.dryRun = dryRun
}

// SetRetry replaces the executor used for writes. Nil disables retries.
func (s *Synchronizer) SetRetry(executor *retry.Executor) {
	if executor == nil {
		executor = retry.NewExecutor(retry.NewFileLockClassifier(), retry.NewExponentialBackoff(0))
	}
	s.retry = executor
}

// SyncProject post-processes and persists a project file.
func (s *Synchronizer) SyncProject(path, text string) (Outcome, error) {
	return s.SyncFile(path, text, KindProject)
}

// SyncSolution post-processes and persists a solution file.
func (s *Synchronizer) SyncSolution(path, text string) (Outcome, error) {
	return s.SyncFile(path, text, KindSolution)
}

// SyncFile runs the hooks for kind over text, then writes the result unless
// the file already holds exactly those bytes. A failure to read the existing
// file is logged and treated as a difference. Write failures are returned
// wrapped in projgen.ErrWriteFailed.
func (s *Synchronizer) SyncFile(path, text string, kind Kind) (Outcome, error) {
	switch kind {
	case KindSolution:
		text = s.hooks.SolutionText(path, text)
	default:
		text = s.hooks.ProjectText(path, text)
	}

	content := []byte(text)
	outcome := Outcome{
		Path:     path,
		Kind:     kind,
		Checksum: s.calculator.CalculateRaw(content),
	}

	if !s.needsWrite(path, content) {
		s.logger.Verbose("Unchanged %s: %s", kind, path)
		return outcome, nil
	}

	outcome.Written = true
	if s.dryRun {
		s.logger.Info("Would write %s: %s", kind, path)
		return outcome, nil
	}

	write := func(context.Context) error { return s.fs.WriteFile(path, content) }
	onRetry := func(attempt int, err error, delay time.Duration) {
		s.logger.Verbose("Retrying %s %s in %s (attempt %d): %v", kind, path, delay, attempt+1, err)
	}
	if err := s.retry.WithOnRetry(onRetry).Execute(context.Background(), write); err != nil {
		return outcome, fmt.Errorf("%s %s: %w: %w", kind, path, projgen.ErrWriteFailed, err)
	}
	s.logger.Verbose("Wrote %s: %s (%s)", kind, path, outcome.Checksum[:12])
	return outcome, nil
}

func (s *Synchronizer) needsWrite(path string, content []byte) bool {
	existing, err := s.fs.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("Failed to read %s for comparison, rewriting: %v", path, err)
		}
		return true
	}
	if bytes.Equal(existing, content) {
		return false
	}
	if s.calculator.CalculateNormalized(existing) == s.calculator.CalculateNormalized(content) {
		s.logger.Verbose("%s differs only in line endings or trailing whitespace", path)
	}
	return true
}
