package launcher

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events editors emit for a
// single save.
const watchDebounce = 200 * time.Millisecond

// Watcher notifies a callback when the config file changes on disk,
// so shells can pick up hand-edits without an explicit reload. The
// parent directory is watched rather than the file itself: Save and
// most editors replace the file by rename, which would otherwise kill
// a direct watch.
type Watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

// WatchConfig starts watching path and invokes onChange (debounced)
// whenever the file is written, created, or renamed into place. The
// callback runs on the watcher goroutine.
func WatchConfig(path string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{fw: fw, done: make(chan struct{})}
	go w.loop(filepath.Base(path), onChange)
	return w, nil
}

func (w *Watcher) loop(base string, onChange func()) {
	var debounce *time.Timer
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.AfterFunc(watchDebounce, onChange)
			} else {
				debounce.Reset(watchDebounce)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Warn("config watch error", "err", err)
		}
	}
}

// Close stops the watcher. Pending debounced callbacks may still fire.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
