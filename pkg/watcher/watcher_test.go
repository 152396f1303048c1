package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func waitSignal(t *testing.T, ch <-chan struct{}, timeout time.Duration) bool {
	t.Helper()
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestWatcherDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.csv")
	writeFile(t, path, "fields,indicator\n")

	w := New(path, WithDebounceDuration(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "fields,indicator\nf1,i1\n")

	if !waitSignal(t, w.Changed(), 3*time.Second) {
		t.Fatal("expected change notification after write")
	}
}

func TestWatcherDetectsAtomicRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.csv")
	writeFile(t, path, "fields,indicator\n")

	w := New(path, WithDebounceDuration(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	tmp := filepath.Join(dir, "mapping.csv.tmp")
	writeFile(t, tmp, "fields,indicator\nf1,i1\n")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if !waitSignal(t, w.Changed(), 3*time.Second) {
		t.Fatal("expected change notification after rename")
	}
}

func TestWatcherPollingFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.jsonl")
	writeFile(t, path, "{\"fields\":\"f1\",\"indicator\":\"i1\"}\n")

	var changes atomic.Int32
	w := New(path,
		WithForcePoll(true),
		WithPollInterval(50*time.Millisecond),
		WithOnChange(func() { changes.Add(1) }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	// mtime granularity can be coarse, so change the size too
	writeFile(t, path, "{\"fields\":\"f1\",\"indicator\":\"i1\"}\n{\"fields\":\"f2\",\"indicator\":\"i2\"}\n")

	if !waitSignal(t, w.Changed(), 3*time.Second) {
		t.Fatal("expected change notification from polling")
	}
	if changes.Load() == 0 {
		t.Error("expected OnChange callback to run")
	}
}

func TestWatcherRemovalReportsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.csv")
	writeFile(t, path, "fields,indicator\n")

	errCh := make(chan error, 4)
	w := New(path,
		WithForcePoll(true),
		WithPollInterval(50*time.Millisecond),
		WithOnError(func(err error) { errCh <- err }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("expected non-nil error")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("expected removal error")
	}
}

func TestWatcherStartTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.csv")
	writeFile(t, path, "fields,indicator\n")

	w := New(path, WithForcePoll(true))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := w.Start(ctx); err != ErrAlreadyStarted {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}
