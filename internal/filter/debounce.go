package filter

import (
	"sync"
	"time"
)

// DefaultQuiet is the quiet period applied to search-text input.
const DefaultQuiet = 300 * time.Millisecond

// Debouncer coalesces rapid triggers into a single trailing-edge call: the
// function runs once, after the quiet period has elapsed without a new
// trigger. Each trigger replaces the pending one.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	quiet time.Duration
}

// NewDebouncer returns a debouncer with the given quiet period; a
// non-positive period falls back to DefaultQuiet.
func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer{quiet: quiet}
}

// Trigger schedules fn to run after the quiet period, cancelling any
// pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, fn)
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush cancels any pending call and runs fn immediately.
func (d *Debouncer) Flush(fn func()) {
	d.Cancel()
	fn()
}
