// Package watch regenerates documentation when project sources change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/minio/highwayhash"

	"github.com/gnana997/techdocs/pkg/util"
)

// Fixed key: fingerprints only need to be stable within one process.
var fingerprintKey = []byte("techdocs-watch-fingerprint-key-0")

// RegenerateFunc rebuilds the documentation. It is never called concurrently.
type RegenerateFunc func(ctx context.Context) error

// Options configures a Watcher.
type Options struct {
	// DebounceMs groups bursts of events into one regeneration. Default 200.
	DebounceMs int

	// IgnorePatterns are matched against base names (filepath.Match syntax).
	IgnorePatterns []string

	// Extensions selects the files whose changes trigger a regeneration.
	// Default .ts, .tsx, .js, .jsx.
	Extensions []string
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		DebounceMs: 200,
		Extensions: []string{".ts", ".tsx", ".js", ".jsx"},
	}
}

// Stats reports watcher activity.
type Stats struct {
	Regenerations int
	Failures      int
	// Unchanged counts debounced bursts skipped because no file's bytes
	// changed.
	Unchanged int
	Pending   bool
	IsRunning bool
}

// Watcher watches a project tree and calls a RegenerateFunc after source
// files change. Events are collected until the tree is quiet for the
// debounce window; a burst that leaves every file's bytes identical is
// ignored.
//
// Usage:
//
//	w, err := watch.New(regen, cache, watch.DefaultOptions(), logger)
//	if err != nil {
//	    return err
//	}
//	if err := w.Start(ctx, root); err != nil {
//	    return err
//	}
//	defer w.Stop()
type Watcher struct {
	watcher    *fsnotify.Watcher
	regenerate RegenerateFunc
	cache      util.SourceCache
	logger     *slog.Logger
	options    Options

	ctx context.Context

	// Debouncing
	timer   *time.Timer
	timerMu sync.Mutex

	// Guarded by stateMu. fingerprints hold the bytes seen by the last
	// regeneration (or by Start).
	fingerprints map[string]uint64
	pending      map[string]struct{}
	stats        Stats
	stateMu      sync.Mutex

	regenMu sync.Mutex

	stopChan chan struct{}
	done     chan struct{}
	started  bool
	looping  bool
	stopped  bool
	mu       sync.Mutex
}

// New creates a watcher. cache may be nil; when set, changed files are
// invalidated in it before regenerating.
func New(regenerate RegenerateFunc, cache util.SourceCache, options Options, logger *slog.Logger) (*Watcher, error) {
	if regenerate == nil {
		return nil, errors.New("regenerate function is required")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultOptions()
	if options.DebounceMs <= 0 {
		options.DebounceMs = defaults.DebounceMs
	}
	if len(options.Extensions) == 0 {
		options.Extensions = defaults.Extensions
	}

	return &Watcher{
		watcher:      fw,
		regenerate:   regenerate,
		cache:        cache,
		logger:       logger,
		options:      options,
		fingerprints: make(map[string]uint64),
		pending:      make(map[string]struct{}),
		stopChan:     make(chan struct{}),
		done:         make(chan struct{}),
	}, nil
}

// Start watches root and every directory below it, then processes events in
// the background until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context, root string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return errors.New("watcher already stopped")
	}
	if w.started {
		w.mu.Unlock()
		return errors.New("watcher already started")
	}
	w.started = true
	w.ctx = ctx
	w.mu.Unlock()

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", root)
	}

	if err := w.addTree(root, true); err != nil {
		return err
	}

	w.mu.Lock()
	w.looping = true
	w.mu.Unlock()
	w.stateMu.Lock()
	w.stats.IsRunning = true
	w.stateMu.Unlock()

	w.logger.Info("file watcher started", "root", root, "debounce_ms", w.options.DebounceMs)
	go w.eventLoop()
	return nil
}

// Stop stops the watcher and waits for the event loop to exit. A
// regeneration already running is allowed to finish. Safe to call more than
// once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	looping := w.looping
	close(w.stopChan)
	w.mu.Unlock()

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.timerMu.Unlock()

	err := w.watcher.Close()
	if looping {
		<-w.done
	}

	w.regenMu.Lock()
	w.stateMu.Lock()
	w.stats.IsRunning = false
	w.stats.Pending = false
	w.stateMu.Unlock()
	w.regenMu.Unlock()

	w.logger.Info("file watcher stopped")
	return err
}

// Stats returns a snapshot of watcher activity.
func (w *Watcher) Stats() Stats {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()
	return w.stats
}

// addTree watches dir and its subdirectories. With seed set, the source
// files found become the baseline; otherwise they are queued as changes.
func (w *Watcher) addTree(dir string, seed bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			w.logger.Warn("cannot walk path, skipping", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path != dir && w.shouldIgnore(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				if path == dir {
					return fmt.Errorf("watch %s: %w", dir, err)
				}
				w.logger.Warn("failed to watch directory", "path", path, "error", err)
			}
			return nil
		}
		if !w.isSource(path) {
			return nil
		}
		if !seed {
			w.queue(path)
			return nil
		}
		if sum, err := fingerprint(path); err == nil {
			w.stateMu.Lock()
			w.fingerprints[path] = sum
			w.stateMu.Unlock()
		}
		return nil
	})
}

func (w *Watcher) eventLoop() {
	defer close(w.done)
	for {
		select {
		case <-w.stopChan:
			return
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if w.shouldIgnore(path) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.logger.Debug("watching new directory", "path", path)
			if err := w.addTree(path, false); err != nil {
				w.logger.Warn("failed to watch directory", "path", path, "error", err)
			}
			w.schedule()
			return
		}
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		// A removed directory takes its sources with it.
		if w.dropTree(path) {
			w.schedule()
			return
		}
	}

	if !w.isSource(path) {
		return
	}
	if event.Op == fsnotify.Chmod {
		return
	}
	w.logger.Debug("file event", "op", event.Op.String(), "file", path)
	w.queue(path)
	w.schedule()
}

// dropTree queues every known source below dir and reports whether there
// was any.
func (w *Watcher) dropTree(dir string) bool {
	prefix := dir + string(filepath.Separator)
	w.stateMu.Lock()
	defer w.stateMu.Unlock()
	found := false
	for path := range w.fingerprints {
		if strings.HasPrefix(path, prefix) {
			w.pending[path] = struct{}{}
			found = true
		}
	}
	return found
}

func (w *Watcher) queue(path string) {
	w.stateMu.Lock()
	w.pending[path] = struct{}{}
	w.stateMu.Unlock()
}

// schedule (re)arms the single debounce timer; only the last event of a
// burst triggers a regeneration.
func (w *Watcher) schedule() {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	w.stateMu.Lock()
	w.stats.Pending = true
	w.stateMu.Unlock()

	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(time.Duration(w.options.DebounceMs)*time.Millisecond, w.run)
}

func (w *Watcher) run() {
	w.regenMu.Lock()
	defer w.regenMu.Unlock()

	select {
	case <-w.stopChan:
		return
	default:
	}

	w.stateMu.Lock()
	paths := w.pending
	w.pending = make(map[string]struct{})
	w.stats.Pending = false
	w.stateMu.Unlock()

	changed := w.settle(paths)
	if len(changed) == 0 && len(paths) > 0 {
		w.stateMu.Lock()
		w.stats.Unchanged++
		w.stateMu.Unlock()
		w.logger.Debug("content unchanged, skipping regeneration", "files", len(paths))
		return
	}
	for _, path := range changed {
		if w.cache != nil {
			w.cache.Invalidate(path)
		}
	}

	w.logger.Debug("regenerating", "changed", len(changed))
	start := time.Now()
	err := w.regenerate(w.ctx)

	w.stateMu.Lock()
	if err != nil {
		w.stats.Failures++
	} else {
		w.stats.Regenerations++
	}
	w.stateMu.Unlock()

	if err != nil {
		w.logger.Error("regeneration failed", "error", err)
		return
	}
	w.logger.Info("documentation regenerated", "changed", len(changed), "ms", time.Since(start).Milliseconds())
}

// settle fingerprints paths against the baseline, updates it, and returns
// the paths whose bytes were added, removed or modified.
func (w *Watcher) settle(paths map[string]struct{}) []string {
	var changed []string
	for path := range paths {
		sum, err := fingerprint(path)

		w.stateMu.Lock()
		prev, seen := w.fingerprints[path]
		switch {
		case err != nil:
			if errors.Is(err, fs.ErrNotExist) {
				delete(w.fingerprints, path)
				if seen {
					changed = append(changed, path)
				}
			} else {
				changed = append(changed, path)
			}
		case !seen || prev != sum:
			w.fingerprints[path] = sum
			changed = append(changed, path)
		}
		w.stateMu.Unlock()
	}
	return changed
}

func (w *Watcher) isSource(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.options.Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.options.IgnorePatterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	switch base {
	case "node_modules", ".git", "dist", "build", ".next":
		return true
	}
	return false
}

func fingerprint(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(data); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
