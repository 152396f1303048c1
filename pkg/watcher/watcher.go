// Package watcher monitors a mapping source file and reports changes so
// the UI can reload rows without restarting.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fieldlens/fieldlens/pkg/debug"
)

// DefaultPollInterval is used when fsnotify is unavailable or disabled.
const DefaultPollInterval = 2 * time.Second

// ForcePollEnvVar disables fsnotify and forces the polling fallback.
// Useful on network filesystems where inotify events are unreliable.
const ForcePollEnvVar = "FL_FORCE_POLL"

var (
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("watcher already started")
	// ErrFileRemoved is reported when the watched file disappears.
	ErrFileRemoved = errors.New("watched file removed")
)

// Watcher watches a single mapping file for modification.
type Watcher struct {
	path         string
	debounce     time.Duration
	pollInterval time.Duration
	forcePoll    bool
	onChange     func()
	onError      func(error)

	mu       sync.Mutex
	started  bool
	cancel   context.CancelFunc
	done     chan struct{}
	changeCh chan struct{}

	// polling state
	lastMod  time.Time
	lastSize int64
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets the quiet period between a filesystem event
// and the change notification.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the polling fallback interval.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.pollInterval = d }
}

// WithOnChange registers a callback invoked after each debounced change.
func WithOnChange(fn func()) Option {
	return func(w *Watcher) { w.onChange = fn }
}

// WithOnError registers a callback for watch errors.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) { w.onError = fn }
}

// WithForcePoll skips fsnotify and uses polling only.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) { w.forcePoll = force }
}

// New creates a watcher for the given file path. The file does not need
// to exist yet; a change fires once it appears.
func New(path string, opts ...Option) *Watcher {
	w := &Watcher{
		path:         path,
		debounce:     DefaultDebounceDuration,
		pollInterval: DefaultPollInterval,
		forcePoll:    os.Getenv(ForcePollEnvVar) != "",
		changeCh:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Changed returns a channel that receives after each debounced change.
// The channel has capacity one; notifications are dropped rather than
// blocked when the receiver lags.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Start begins watching until the context is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return ErrAlreadyStarted
	}
	w.started = true
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	w.mu.Unlock()

	if info, err := os.Stat(w.path); err == nil {
		w.lastMod = info.ModTime()
		w.lastSize = info.Size()
	}

	if w.forcePoll {
		debug.Logf("watcher: polling %s every %s", w.path, w.pollInterval)
		go w.pollLoop(ctx)
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		debug.Logf("watcher: fsnotify unavailable (%v), polling instead", err)
		go w.pollLoop(ctx)
		return nil
	}

	// Watch the parent directory rather than the file itself so atomic
	// saves (rename over the original) keep being observed.
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	debug.Logf("watcher: fsnotify on %s", dir)
	go w.eventLoop(ctx, fsw)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	done := w.done
	w.started = false
	w.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (w *Watcher) eventLoop(ctx context.Context, fsw *fsnotify.Watcher) {
	defer close(w.done)
	defer fsw.Close()

	deb := NewDebouncer(w.debounce)
	defer deb.Cancel()

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&fsnotify.Remove != 0 {
				w.reportError(fmt.Errorf("%w: %s", ErrFileRemoved, w.path))
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				deb.Trigger(w.notifyChange)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

func (w *Watcher) pollLoop(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	missing := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(w.path)
			if err != nil {
				if !missing {
					missing = true
					w.reportError(fmt.Errorf("%w: %s", ErrFileRemoved, w.path))
				}
				continue
			}
			if missing || !info.ModTime().Equal(w.lastMod) || info.Size() != w.lastSize {
				missing = false
				w.lastMod = info.ModTime()
				w.lastSize = info.Size()
				w.notifyChange()
			}
		}
	}
}

func (w *Watcher) notifyChange() {
	debug.Logf("watcher: change detected on %s", w.path)
	select {
	case w.changeCh <- struct{}{}:
	default:
	}
	if w.onChange != nil {
		w.onChange()
	}
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
