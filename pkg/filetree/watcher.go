package filetree

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports filesystem changes under a root so the owning view can
// reload its tree. Rapid event bursts (editor save dances, recursive
// copies) are debounced into a single callback.
type Watcher struct {
	root    string
	ignore  *IgnoreMatcher
	watcher *fsnotify.Watcher

	onChange func()

	ctx    context.Context
	cancel context.CancelFunc

	lastEvent time.Time
	debounce  time.Duration
}

// NewWatcher creates a watcher for the hierarchy under root. onChange is
// called from the watch goroutine; it must hand off to the owner rather
// than mutate shared state.
func NewWatcher(root string, ignore *IgnoreMatcher, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		root:     root,
		ignore:   ignore,
		watcher:  fsw,
		onChange: onChange,
		ctx:      ctx,
		cancel:   cancel,
		debounce: 200 * time.Millisecond,
	}, nil
}

// Start registers every non-ignored directory under the root and begins
// delivering change callbacks.
func (w *Watcher) Start() error {
	if err := w.addRecursive(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	go w.watchLoop()
	return nil
}

// Stop shuts the watcher down. No callbacks fire afterwards.
func (w *Watcher) Stop() {
	w.cancel()
	w.watcher.Close()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, same as Load.
			return filepath.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.ignore.Matches(path, true) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if w.ignore.Matches(event.Name, true) {
				continue
			}

			// New directories must join the watch before their own
			// contents change.
			if event.Op&fsnotify.Create != 0 {
				_ = w.addRecursive(event.Name)
			}

			now := time.Now()
			if now.Sub(w.lastEvent) < w.debounce {
				continue
			}
			w.lastEvent = now

			w.onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("warning: file watcher: %v", err)
		}
	}
}
