package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration collapses editor save bursts into one reload.
const DefaultDebounceDuration = 250 * time.Millisecond

// Debouncer coalesces rapid triggers into a single callback invocation
// after a quiet period.
type Debouncer struct {
	d     time.Duration
	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{d: d}
}

// Trigger schedules fn after the quiet period, resetting any pending run.
func (b *Debouncer) Trigger(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.d, fn)
}

// Cancel stops any pending invocation.
func (b *Debouncer) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
