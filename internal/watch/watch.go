// Package watch re-runs a handler when a watched file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces bursts of writes into one handler call.
const DefaultDebounce = 200 * time.Millisecond

// DefaultPollInterval is used by Poller when none is given.
const DefaultPollInterval = 2 * time.Second

// Handler is called with the watched path after it settles.
type Handler func(path string) error

// Option configures a Watcher or Poller.
type Option func(*settings)

type settings struct {
	debounce time.Duration
	interval time.Duration
	logger   *zap.Logger
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(s *settings) { s.debounce = d }
}

// WithInterval overrides DefaultPollInterval.
func WithInterval(d time.Duration) Option {
	return func(s *settings) { s.interval = d }
}

// WithLogger reports handler and watcher errors.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

func newSettings(opts []Option) settings {
	s := settings{
		debounce: DefaultDebounce,
		interval: DefaultPollInterval,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Watcher follows one file with fsnotify. The parent directory is watched
// so that editors which replace the file by rename are still seen.
type Watcher struct {
	path    string
	handler Handler
	settings
}

// New returns a watcher for path.
func New(path string, handler Handler, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	return &Watcher{path: abs, handler: handler, settings: newSettings(opts)}, nil
}

// Path is the absolute watched path.
func (w *Watcher) Path() string { return w.path }

// Run blocks until ctx is cancelled. Handler errors are logged and do not
// stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	// Single timer, started stopped; every relevant event resets it.
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-timer.C:
			w.fire()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.String("path", w.path), zap.Error(err))
		}
	}
}

func (w *Watcher) fire() {
	if _, err := os.Stat(w.path); errors.Is(err, os.ErrNotExist) {
		return
	}
	if err := w.handler(w.path); err != nil {
		w.logger.Warn("handler failed", zap.String("path", w.path), zap.Error(err))
	}
}

// Poller follows one file by modification time. It is the fallback for
// filesystems without change notification.
type Poller struct {
	path    string
	handler Handler
	last    time.Time
	size    int64
	settings
}

// NewPoller returns a poller for path. The file's current state is the
// baseline; only later changes call handler.
func NewPoller(path string, handler Handler, opts ...Option) *Poller {
	p := &Poller{path: path, handler: handler, settings: newSettings(opts)}
	if info, err := os.Stat(path); err == nil {
		p.last, p.size = info.ModTime(), info.Size()
	}
	return p
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.scan()
		}
	}
}

func (p *Poller) scan() {
	info, err := os.Stat(p.path)
	if err != nil {
		return
	}
	if info.ModTime().Equal(p.last) && info.Size() == p.size {
		return
	}
	p.last, p.size = info.ModTime(), info.Size()
	if err := p.handler(p.path); err != nil {
		p.logger.Warn("handler failed", zap.String("path", p.path), zap.Error(err))
	}
}
