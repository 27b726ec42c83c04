// Package watcher observes the transcript store for changes and produces
// coalesced reload ticks, grounded on
// _examples' filebrowser.Watcher debounce pattern.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"claudatui/internal/obslog"
)

// Watcher debounces raw fsnotify events on the projects directory into a
// single coalesced reload tick, matching spec.md §5's "try_recv" drain
// contract: the event loop never blocks on it.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	rootDir   string
	ticks     chan struct{}
	stop      chan struct{}
	debounce  *time.Timer
	mu        sync.Mutex
	closed    bool
	stopOnce  sync.Once
	logger    *zap.Logger
}

// debounceWindow matches the 100ms coalescing window used elsewhere in the
// pack for filesystem event debouncing.
const debounceWindow = 100 * time.Millisecond

// New starts watching rootDir (the claude_dir/projects tree) and its
// existing subdirectories, recursing into newly created project directories
// as they appear.
func New(rootDir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsw,
		rootDir:   rootDir,
		ticks:     make(chan struct{}, 1),
		stop:      make(chan struct{}),
		logger:    obslog.Logger(),
	}

	if err := w.addRecursive(rootDir); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

func (w *Watcher) addRecursive(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		return w.fsWatcher.Add(path)
	})
}

func (w *Watcher) run() {
	defer func() {
		w.mu.Lock()
		w.closed = true
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
		close(w.ticks)
	}()

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.scheduleTick()
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.logger.Warn("failed to watch new project directory",
							zap.String("path", event.Name), zap.Error(err))
					}
				}
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("transcript watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) scheduleTick() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceWindow, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.closed {
			return
		}
		select {
		case w.ticks <- struct{}{}:
		default:
		}
	})
}

// TryRecv drains at most one pending coalesced tick, returning true iff one
// was present. Never blocks (spec.md §5 suspension-points contract).
func (w *Watcher) TryRecv() bool {
	select {
	case <-w.ticks:
		return true
	default:
		return false
	}
}

// Close stops the underlying fsnotify watcher and background goroutine.
func (w *Watcher) Close() error {
	w.stopOnce.Do(func() { close(w.stop) })
	return w.fsWatcher.Close()
}
