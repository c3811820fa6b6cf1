// ABOUTME: Polling-based file watcher used to hot-reload settings and catalog files
// ABOUTME: Monitors file mtime at a configurable interval and reports which paths changed

package config

import (
	"context"
	"os"
	"sync"
	"time"
)

// Watcher monitors files for changes by polling mtime at regular intervals.
type Watcher struct {
	paths    []string
	onChange func(changed []string)
	interval time.Duration

	mu      sync.Mutex
	mtimes  map[string]time.Time
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

// NewWatcher creates a watcher that calls onChange with the changed paths.
func NewWatcher(paths []string, onChange func(changed []string)) *Watcher {
	return &Watcher{
		paths:    append([]string(nil), paths...),
		onChange: onChange,
		interval: 2 * time.Second,
		mtimes:   make(map[string]time.Time),
	}
}

// SetInterval overrides the default polling interval (2s). It has no effect
// once the watcher is running.
func (w *Watcher) SetInterval(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.interval = d
}

// Start snapshots the watched files and begins polling until ctx is done or
// Stop is called. Subsequent calls are no-ops.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done != nil || w.stopped {
		return
	}
	w.snapshotLocked()

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.loop(ctx, w.interval, w.done)
}

// Stop halts polling and waits for the polling goroutine to exit. Safe to
// call multiple times and concurrently.
func (w *Watcher) Stop() {
	w.mu.Lock()
	w.stopped = true
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// ForceCheck runs one check immediately and returns the changed paths.
// onChange is called synchronously when something changed.
func (w *Watcher) ForceCheck() []string {
	w.mu.Lock()
	changed := w.checkLocked()
	w.mu.Unlock()

	if len(changed) > 0 {
		w.onChange(changed)
	}
	return changed
}

func (w *Watcher) loop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.mu.Lock()
			changed := w.checkLocked()
			w.mu.Unlock()

			if len(changed) > 0 {
				w.onChange(changed)
			}
		}
	}
}

// checkLocked compares current mtimes with the stored snapshot, updates the
// snapshot and returns the paths that differ. Must hold mu.
func (w *Watcher) checkLocked() []string {
	var changed []string
	for _, path := range w.paths {
		prev, existed := w.mtimes[path]
		info, err := os.Stat(path)
		if err != nil {
			if existed {
				delete(w.mtimes, path)
				changed = append(changed, path)
			}
			continue
		}
		if !existed || !info.ModTime().Equal(prev) {
			w.mtimes[path] = info.ModTime()
			changed = append(changed, path)
		}
	}
	return changed
}

// snapshotLocked records current mtimes. Must hold mu.
func (w *Watcher) snapshotLocked() {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			delete(w.mtimes, path)
			continue
		}
		w.mtimes[path] = info.ModTime()
	}
}
