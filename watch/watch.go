// Package watch reruns work when an input file changes on disk.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/logger"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// ChangeFunc runs after the watched file changes. Errors are logged and do
// not stop the watcher.
type ChangeFunc func(ctx context.Context, path string) error

// Watcher watches a single file. The parent directory is watched so that
// editors which save by renaming a temp file over the original are seen.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	log      *zap.SugaredLogger

	mu        sync.RWMutex
	callbacks []ChangeFunc
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the settle period. Non-positive values fire on every
// event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the watcher's logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(w *Watcher) { w.log = logger.OrNop(log) }
}

// New starts watching path. The file must exist.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, errors.Wrapf(err, "cannot watch %s", path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, errors.Wrapf(err, "failed to watch directory of %s", path)
	}

	w := &Watcher{
		path:     abs,
		fsw:      fsw,
		debounce: DefaultDebounce,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// OnChange registers a callback. Callbacks run in registration order.
func (w *Watcher) OnChange(fn ChangeFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// Run delivers change notifications until ctx is cancelled, then closes
// the underlying watcher. Callbacks never run concurrently.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debugw("Input change detected",
				logger.FieldPath, event.Name,
				"op", event.Op.String())

			if w.debounce <= 0 {
				w.notify(ctx)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.notify(ctx)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create)
}

func (w *Watcher) notify(ctx context.Context) {
	w.mu.RLock()
	callbacks := make([]ChangeFunc, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, fn := range callbacks {
		if ctx.Err() != nil {
			return
		}
		if err := fn(ctx, w.path); err != nil {
			// Remaining callbacks still run
			w.log.Warnw("Change callback failed",
				logger.FieldPath, w.path,
				logger.FieldError, err)
		}
	}
}
