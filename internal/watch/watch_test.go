package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) handle(path string) error {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

func TestWatcherCoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.json")
	if err := os.WriteFile(path, []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	w, err := New(path, rec.handle, WithDebounce(100*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte(`{"turns":[]}`), 0600); err != nil {
			t.Fatal(err)
		}
	}

	time.Sleep(500 * time.Millisecond)
	cancel()

	if got := rec.count(); got != 1 {
		t.Fatalf("expected 1 handler call, got %d", got)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.paths[0] != w.Path() {
		t.Errorf("got path %q, want %q", rec.paths[0], w.Path())
	}
}

func TestWatcherSeesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.json")

	rec := &recorder{}
	w, err := New(path, rec.handle, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	time.Sleep(400 * time.Millisecond)
	cancel()

	if got := rec.count(); got != 1 {
		t.Fatalf("expected 1 handler call, got %d", got)
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.json")

	rec := &recorder{}
	w, err := New(path, rec.handle, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)
	cancel()

	if got := rec.count(); got != 0 {
		t.Fatalf("expected no handler calls, got %d", got)
	}
}

func TestWatcherLogsHandlerErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.json")

	core, logs := observer.New(zap.WarnLevel)
	calls := 0
	var mu sync.Mutex
	w, err := New(path, func(string) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return errors.New("bad log")
	}, WithDebounce(50*time.Millisecond), WithLogger(zap.New(core)))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte(`x`), 0600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("Run returned %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected 1 handler call, got %d", calls)
	}
	if n := logs.FilterMessage("handler failed").Len(); n != 1 {
		t.Errorf("expected 1 logged failure, got %d", n)
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "nope", "game.json"), (&recorder{}).handle)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestPollerDetectsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.json")
	if err := os.WriteFile(path, []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	p := NewPoller(path, rec.handle)

	p.scan()
	if got := rec.count(); got != 0 {
		t.Fatalf("unchanged file triggered %d calls", got)
	}

	if err := os.WriteFile(path, []byte(`{"turns":[1]}`), 0600); err != nil {
		t.Fatal(err)
	}
	p.scan()
	p.scan()
	if got := rec.count(); got != 1 {
		t.Fatalf("expected 1 call after change, got %d", got)
	}
}

func TestPollerRunStopsOnCancel(t *testing.T) {
	p := NewPoller(filepath.Join(t.TempDir(), "missing.json"), (&recorder{}).handle,
		WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run returned %v", err)
	}
}
