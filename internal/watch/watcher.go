// Package watch flags on-disk changes beneath the scanned root while a
// session is running. The listing itself stays static for the session; the
// watcher only lets the UI warn that it may be stale.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"treeclip/internal/log"
)

// Change represents a filesystem event detected under the watched root
type Change struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors the scanned directory tree for changes using fsnotify
type Watcher struct {
	// Channel to deliver change events
	changeChan chan Change

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state
	mutex sync.Mutex

	// Whether the event loop is running
	running bool
}

// New creates a new watcher
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		changeChan: make(chan Change, 16),
		stopChan:   make(chan struct{}),
		fsWatcher:  fsWatcher,
	}, nil
}

// AddTree registers root and every directory below it with the watcher.
// Unreadable subdirectories are skipped.
func (w *Watcher) AddTree(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if addErr := w.fsWatcher.Add(path); addErr != nil {
			log.Warn("cannot watch %s: %v", path, addErr)
		}
		return nil
	})
}

// Changes returns the channel that delivers change events
func (w *Watcher) Changes() <-chan Change {
	return w.changeChan
}

// Start begins the event processing loop
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.mutex.Unlock()

	go func() {
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				change := Change{
					Path:      event.Name,
					Op:        event.Op,
					Timestamp: time.Now(),
				}
				select {
				case w.changeChan <- change:
				default:
					// UI only cares that something changed; dropping
					// events when the buffer is full is fine
				}
			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error: %v", err)
			case <-w.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop halts the event loop and releases the fsnotify watcher
func (w *Watcher) Stop() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	close(w.stopChan)
	return w.fsWatcher.Close()
}
