// Package watcher reports when files open in panes change on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/guzus/panejump/internal/log"
)

// Watcher batches change notifications for a set of files.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	changes   chan []string

	mu    sync.Mutex
	files map[string]bool // absolute paths being watched
	dirs  map[string]int  // watched directory -> number of files in it
}

// New creates a watcher that waits debounce after the last event before
// reporting a batch.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher: fsw,
		debounce:  debounce,
		changes:   make(chan []string, 1),
		files:     make(map[string]bool),
		dirs:      make(map[string]int),
	}, nil
}

// Add starts watching path. Its directory is watched so that editors that
// replace files on save are still noticed.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[abs] {
		return nil
	}
	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[abs] = true
	return nil
}

// Remove stops watching path.
func (w *Watcher) Remove(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.files[abs] {
		return
	}
	delete(w.files, abs)
	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		_ = w.fsWatcher.Remove(dir)
	}
}

// Files returns the watched paths, sorted.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Changes delivers sorted batches of absolute paths that changed.
func (w *Watcher) Changes() <-chan []string {
	return w.changes
}

// Run processes events until ctx ends, then releases the fsnotify watcher
// and closes the Changes channel.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.changes)
	defer func() { _ = w.fsWatcher.Close() }()

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]bool)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			pending[filepath.Clean(event.Name)] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			sort.Strings(batch)
			pending = make(map[string]bool)

			select {
			case w.changes <- batch:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(event.Name)]
}
