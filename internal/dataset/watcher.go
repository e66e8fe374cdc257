package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reloads a Store when its backing file changes. Used in dev mode.
type Watcher struct {
	mu       sync.Mutex
	store    *Store
	path     string
	debounce time.Duration
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	reloads  int
}

// NewWatcher watches the file behind store. Only FileSource stores can be watched.
func NewWatcher(store *Store, logger *zap.Logger) (*Watcher, error) {
	fsrc, ok := store.src.(FileSource)
	if !ok {
		return nil, fmt.Errorf("%w: only file sources can be watched", ErrUnsupportedSource)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(fsrc.Path)
	if err != nil {
		abs = fsrc.Path
	}
	return &Watcher{
		store:    store,
		path:     abs,
		debounce: defaultDebounce,
		logger:   logger,
	}, nil
}

// SetDebounce adjusts how long the watcher waits for writes to settle.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if d > 0 {
		w.debounce = d
	}
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("dataset: watcher: %w", err)
	}
	// Editors replace files on save, so watch the directory.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("dataset: watch %s: %w", w.path, err)
	}
	w.watcher = fw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true
	go w.run(ctx, w.debounce)
	w.logger.Info("watching dataset", zap.String("path", w.path))
	return nil
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	done, fw := w.doneCh, w.watcher
	w.mu.Unlock()

	<-done
	if err := fw.Close(); err != nil {
		w.logger.Warn("closing dataset watcher", zap.Error(err))
	}
}

// Reloads reports how many reloads the watcher has triggered.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) run(ctx context.Context, debounce time.Duration) {
	defer close(w.doneCh)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("dataset watcher error", zap.Error(err))
		case <-timer.C:
			if err := w.store.Reload(ctx); err == nil {
				w.mu.Lock()
				w.reloads++
				w.mu.Unlock()
			}
		}
	}
}
