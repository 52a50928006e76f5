package cli

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/corey/fmtkit/parser"
)

// Watcher monitors directories for changes to supported files and fires a
// callback per changed path. Rapid events for one file are debounced since
// editors often trigger several writes per save.
type Watcher struct {
	fw         *fsnotify.Watcher
	extensions *parser.ExtensionSet
	done       chan struct{}
	closeOnce  sync.Once
}

// NewWatcher creates a watcher filtered by the provider's extensions.
func NewWatcher(extensions *parser.ExtensionSet) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:         fw,
		extensions: extensions,
		done:       make(chan struct{}),
	}, nil
}

// Watch starts monitoring the given roots recursively and blocks until
// Close is called. onChange receives the path of each changed supported
// file.
func (w *Watcher) Watch(roots []string, onChange func(path string)) error {
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return err
		}
		err = filepath.Walk(abs, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil // skip inaccessible paths
			}
			if info.IsDir() {
				if skipDirs[info.Name()] && path != abs {
					return filepath.SkipDir
				}
				return w.fw.Add(path)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	deb := newDebouncer(50 * time.Millisecond)

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			path := event.Name

			// New directories join the watch list.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if !skipDirs[info.Name()] {
						w.fw.Add(path)
					}
					continue
				}
			}

			if !w.extensions.Matches(path) {
				continue
			}

			if !deb.allow(path, time.Now()) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				onChange(path)
			}

		case _, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			// fsnotify recovers on its own; errors are not fatal here.

		case <-w.done:
			return nil
		}
	}
}

// debouncer suppresses repeat events for a path within the interval. Stale
// entries are evicted on every call so the map stays bounded by the number
// of paths touched within one interval, not by the lifetime of the watch.
type debouncer struct {
	interval time.Duration
	seen     map[string]time.Time
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		seen:     make(map[string]time.Time),
	}
}

func (d *debouncer) allow(path string, now time.Time) bool {
	for p, last := range d.seen {
		if now.Sub(last) >= d.interval {
			delete(d.seen, p)
		}
	}
	if _, ok := d.seen[path]; ok {
		return false
	}
	d.seen[path] = now
	return true
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() { close(w.done) })
	return w.fw.Close()
}
