package assets

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/lakeside/internal/logger"
)

// Watcher collects the names of files that changed in one directory.
// Events accumulate in the background; Drain hands them to the frame loop.
type Watcher struct {
	watcher *fsnotify.Watcher
	exts    []string
	log     *zap.Logger

	mu      sync.Mutex
	changed map[string]struct{}
	done    chan struct{}
}

// Watch starts watching dir for writes, creates and renames of files whose
// extension is in exts. An empty exts accepts every file.
func Watch(dir string, exts ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		watcher: fw,
		exts:    exts,
		log:     logger.Named("watch"),
		changed: make(map[string]struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(ev.Name)
			if len(w.exts) > 0 && !slices.Contains(w.exts, filepath.Ext(name)) {
				continue
			}
			w.mu.Lock()
			w.changed[name] = struct{}{}
			w.mu.Unlock()
			w.log.Debug("file changed", zap.String("name", name), zap.Stringer("op", ev.Op))

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// Drain returns the base names changed since the last call, sorted.
func (w *Watcher) Drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.changed) == 0 {
		return nil
	}
	names := make([]string, 0, len(w.changed))
	for name := range w.changed {
		names = append(names, name)
	}
	clear(w.changed)
	slices.Sort(names)
	return names
}

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
