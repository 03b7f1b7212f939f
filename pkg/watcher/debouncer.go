// Package watcher re-runs a callback when a project file changes on disk.
// Editor saves arrive as bursts of filesystem events, so triggers are
// debounced: the callback fires once after a quiet period.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 250 * time.Millisecond

// Debouncer coalesces rapid triggers into a single callback invocation.
type Debouncer struct {
	quiet time.Duration
	timer *time.Timer
	mu    sync.Mutex
	seq   uint64
}

// NewDebouncer returns a debouncer with the given quiet period, or
// DefaultDebounce when zero.
func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet == 0 {
		quiet = DefaultDebounce
	}
	return &Debouncer{quiet: quiet}
}

// Trigger schedules the callback after the quiet period. A trigger arriving
// before then replaces the pending callback.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.mu.Lock()
		// A stale timer can fire after Stop returned false; the sequence
		// check keeps only the most recently scheduled callback alive.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		callback()
	})
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
