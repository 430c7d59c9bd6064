// Package watch turns filesystem events in a project directory into
// incremental sync calls.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vvka-141/projgen/internal/files/scanner"
	"github.com/vvka-141/projgen/pkg/projgen"
)

// Syncer is the part of the generation service the watcher drives.
type Syncer interface {
	Sync() error
	SyncIfNeeded(affected, reimported []string) (bool, error)
}

type Op int

const (
	OpCreate Op = iota
	OpWrite
	OpRemove
	OpRename
)

func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Change is one filesystem event.
type Change struct {
	Path string
	Op   Op
}

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period that closes a batch.
	Debounce time.Duration

	// ManifestPath is the absolute path of the compilation manifest. A
	// change to it triggers OnManifestChange followed by a full Sync.
	ManifestPath string

	// OnManifestChange reloads the metadata provider.
	OnManifestChange func() error

	// BufferSize bounds queued events. Events beyond it are dropped.
	BufferSize int
}

// Watcher batches filesystem events and forwards them to a Syncer.
type Watcher struct {
	root    string
	syncer  Syncer
	logger  projgen.Logger
	opts    Options
	watcher *fsnotify.Watcher
	changes chan Change

	mu       sync.Mutex
	watching bool
}

// New creates a watcher rooted at projectDir.
// Panics if syncer or logger is nil.
func New(projectDir string, syncer Syncer, logger projgen.Logger, opts Options) (*Watcher, error) {
	if syncer == nil {
		panic("syncer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = projgen.DefaultWatchDebounce
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = 1024
	}

	root, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		root:    root,
		syncer:  syncer,
		logger:  logger,
		opts:    opts,
		watcher: fw,
		changes: make(chan Change, opts.BufferSize),
	}, nil
}

// Run watches until ctx is cancelled. Pending changes are flushed before
// it returns.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return errors.New("watcher is already running")
	}
	w.watching = true
	w.mu.Unlock()
	defer w.watcher.Close()

	if err := w.addRecursive(w.root); err != nil {
		return err
	}
	if w.opts.ManifestPath != "" {
		dir := filepath.Dir(w.opts.ManifestPath)
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Verbose("Cannot watch manifest directory %s: %v", dir, err)
		}
	}
	w.logger.Info("Watching %s", w.root)

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.debounceLoop(ctx)
	}()
	w.processEvents(ctx)
	<-done
	return nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && w.ignoredDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(p)
	})
}

func (w *Watcher) ignoredDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, ignored := range scanner.DefaultIgnoredDirectories {
		if strings.EqualFold(name, ignored) {
			return true
		}
	}
	return false
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			change := Change{Path: event.Name, Op: convertOp(event.Op)}
			select {
			case w.changes <- change:
			default:
				w.logger.Verbose("Event queue full, dropping %s", event.Name)
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.ignoredDir(info.Name()) {
					_ = w.addRecursive(event.Name)
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watch error: %v", err)
		}
	}
}

func convertOp(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	default:
		return OpWrite
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	var batch []Change
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(batch) > 0 {
			w.handle(batch)
			batch = nil
		}
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case change := <-w.changes:
			batch = append(batch, change)
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.opts.Debounce)
			}
		case <-timerC:
			flush()
		}
	}
}

// handle forwards one batch. Errors are logged; the watcher keeps running.
func (w *Watcher) handle(changes []Change) {
	batch := Classify(w.root, w.opts.ManifestPath, changes)

	if batch.ManifestChanged {
		w.logger.Info("Compilation manifest changed, regenerating")
		if w.opts.OnManifestChange != nil {
			if err := w.opts.OnManifestChange(); err != nil {
				w.logger.Error("Reload manifest: %v", err)
				return
			}
		}
		if err := w.syncer.Sync(); err != nil {
			w.logger.Error("Sync failed: %v", err)
		}
		return
	}

	if len(batch.Affected) == 0 && len(batch.Reimported) == 0 {
		return
	}
	regenerated, err := w.syncer.SyncIfNeeded(batch.Affected, batch.Reimported)
	if err != nil {
		w.logger.Error("Sync failed: %v", err)
		return
	}
	if regenerated {
		w.logger.Verbose("Regenerated after %d change(s)", len(changes))
	}
}
