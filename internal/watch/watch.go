// Package watch regenerates documentation when its inputs change. It watches
// files (through their parent directory) and whole directories with fsnotify
// and coalesces bursts of events into a single trigger.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/webdoc/internal/logfields"
)

const (
	DefaultQuietWindow = 500 * time.Millisecond
	DefaultMaxDelay    = 5 * time.Second
)

// Options configures a Watcher.
type Options struct {
	// Paths are files or directories. Empty entries are ignored.
	Paths []string
	// QuietWindow is how long the inputs must stay unchanged before a trigger.
	QuietWindow time.Duration
	// MaxDelay bounds how long a steady stream of changes can postpone a trigger.
	MaxDelay time.Duration
	Logger   *slog.Logger
}

// Trigger is called with the sorted, absolute paths that changed since the last call.
type Trigger func(ctx context.Context, changed []string) error

// Watcher runs Trigger after its inputs settle. Triggers run one at a time on
// the Run goroutine; changes made meanwhile are picked up afterwards.
type Watcher struct {
	opts    Options
	logger  *slog.Logger
	fsw     *fsnotify.Watcher
	files   map[string]struct{}
	dirs    map[string]struct{}
	ready   chan struct{}
	once    sync.Once
	pending map[string]struct{}
}

// New validates opts and registers every path with fsnotify.
func New(opts Options) (*Watcher, error) {
	if opts.QuietWindow <= 0 {
		opts.QuietWindow = DefaultQuietWindow
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = DefaultMaxDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		opts:    opts,
		logger:  logger,
		files:   make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		ready:   make(chan struct{}),
		pending: make(map[string]struct{}),
	}

	watchDirs := make(map[string]struct{})
	for _, p := range opts.Paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "failed to resolve watch path").
				WithContext("path", p).
				Build()
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryNotFound, "watch path does not exist").
				WithContext("path", p).
				Build()
		}
		if info.IsDir() {
			w.dirs[abs] = struct{}{}
			watchDirs[abs] = struct{}{}
		} else {
			w.files[abs] = struct{}{}
			watchDirs[filepath.Dir(abs)] = struct{}{}
		}
	}
	if len(watchDirs) == 0 {
		return nil, ferrors.ValidationError("at least one path to watch is required").Build()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to create file watcher").Build()
	}
	for dir := range watchDirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, fmt.Sprintf("failed to watch directory %s", dir)).Build()
		}
	}
	w.fsw = fsw
	return w, nil
}

// Ready is closed once Run is consuming events.
func (w *Watcher) Ready() <-chan struct{} { return w.ready }

// Close releases the fsnotify watcher. Run returns once its channels close.
func (w *Watcher) Close() error {
	if w == nil || w.fsw == nil {
		return nil
	}
	return w.fsw.Close()
}

// Run blocks until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, trigger Trigger) error {
	if trigger == nil {
		return ferrors.ValidationError("trigger is required").Build()
	}

	quietTimer := newStoppedTimer()
	maxTimer := newStoppedTimer()
	var quietC, maxC <-chan time.Time

	w.logger.Info("Watching for changes",
		logfields.Count(len(w.files)+len(w.dirs)),
		"quiet_window", w.opts.QuietWindow.String())
	w.once.Do(func() { close(w.ready) })

	fire := func(reason string) {
		quietTimer.Stop()
		maxTimer.Stop()
		quietC, maxC = nil, nil
		w.fire(ctx, trigger, reason)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			first := len(w.pending) == 0
			w.pending[ev.Name] = struct{}{}
			resetTimer(quietTimer, w.opts.QuietWindow)
			quietC = quietTimer.C
			if first {
				resetTimer(maxTimer, w.opts.MaxDelay)
				maxC = maxTimer.C
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))

		case <-quietC:
			fire("quiet")

		case <-maxC:
			fire("max_delay")
		}
	}
}

func (w *Watcher) fire(ctx context.Context, trigger Trigger, reason string) {
	if len(w.pending) == 0 {
		return
	}
	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	slices.Sort(changed)
	clear(w.pending)

	w.logger.Info("Inputs changed", logfields.Count(len(changed)), "reason", reason)
	if err := trigger(ctx, changed); err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Error("Regeneration failed", logfields.Error(err))
	}
}

// relevant filters events down to watched files and entries of watched directories.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if _, ok := w.files[ev.Name]; ok {
		if ev.Op.Has(fsnotify.Remove) {
			w.logger.Warn("Watched file removed", logfields.Path(ev.Name))
			return false
		}
		return true
	}
	_, ok := w.dirs[filepath.Dir(ev.Name)]
	return ok
}

func newStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return t
}

func resetTimer(t *time.Timer, after time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(after)
}
