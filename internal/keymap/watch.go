package keymap

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const reloadDebounce = 150 * time.Millisecond

// Watcher reports external edits of a keybinds file. It never touches the
// registry itself: the owner drains Changes and calls Registry.Reload from
// its own event loop.
type Watcher struct {
	fs      *fsnotify.Watcher
	path    string
	changes chan struct{}
	log     zerolog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// Watch starts watching the registry's keybinds file. The parent directory
// is watched because editors and Save replace the file by rename.
func (r *Registry) Watch() (*Watcher, error) {
	if r.path == "" {
		return nil, fmt.Errorf("watch keybinds: registry has no file")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(r.path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(r.path), err)
	}
	w := &Watcher{
		fs:      fsw,
		path:    filepath.Clean(r.path),
		changes: make(chan struct{}, 1),
		log:     r.log,
	}
	go w.loop()
	return w, nil
}

// Changes delivers one value per burst of writes to the keybinds file.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("keybinds watcher error")
		}
	}
}

// schedule coalesces bursts of events into a single notification.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, func() {
		select {
		case w.changes <- struct{}{}:
		default:
		}
	})
}
