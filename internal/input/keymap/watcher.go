package keymap

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/keybind/internal/logging"
)

// Watcher reloads keymap files when they change and re-registers them.
// A reload replaces the keymap wholesale; a file that fails to compile
// leaves the previously registered keymap in place.
type Watcher struct {
	mu sync.Mutex

	fsw      *fsnotify.Watcher
	loader   *Loader
	registry *Registry
	logger   *logging.Logger
	debounce time.Duration

	// files holds the tracked files by absolute path.
	files map[string]bool

	// dirs holds the directories added to fsnotify.
	dirs map[string]bool

	pending map[string]*time.Timer
	closed  bool

	onReload func(*Keymap)
	onError  func(path string, err error)
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long a file must be quiet before it is reloaded.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithWatchLogger sets the watcher's logger.
func WithWatchLogger(l *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// OnReload registers a callback run after a keymap is reloaded.
func OnReload(fn func(*Keymap)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// OnError registers a callback run when a reload fails.
func OnError(fn func(path string, err error)) WatcherOption {
	return func(w *Watcher) { w.onError = fn }
}

// NewWatcher creates a watcher that reloads through loader into registry.
func NewWatcher(loader *Loader, registry *Registry, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		loader:   loader,
		registry: registry,
		logger:   logging.Null,
		debounce: 100 * time.Millisecond,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		pending:  make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("watcher")
	return w, nil
}

// Add starts tracking path. The containing directory is watched so that
// editors which save by renaming a new file into place are noticed.
func (w *Watcher) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	dir := filepath.Dir(absPath)
	if !w.dirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.files[absPath] = true
	return nil
}

// Files returns the tracked files.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	return files
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error: %v", err)
			w.reportError("", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
		return
	}

	path, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || !w.files[path] {
		return
	}

	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() { w.reload(path) })
}

func (w *Watcher) reload(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	km, err := w.loader.LoadFile(path)
	if err != nil {
		w.logger.Warn("reload of %s failed: %v", path, err)
		w.reportError(path, err)
		return
	}
	if err := w.registry.Register(km); err != nil {
		w.reportError(path, err)
		return
	}

	w.logger.WithField("revision", km.Revision).Info("reloaded %s", path)
	if w.onReload != nil {
		w.onReload(km)
	}
}

func (w *Watcher) reportError(path string, err error) {
	if w.onError != nil {
		w.onError(path, err)
	}
}

// Close stops the watcher and cancels pending reloads.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	return w.fsw.Close()
}
