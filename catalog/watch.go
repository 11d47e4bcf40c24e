package catalog

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const watchDebounce = 200 * time.Millisecond

// Watcher signals when a disk-backed snippet file changes, so connected
// panels can be told to refresh. Embedded catalogs never change and are not
// watched.
type Watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

// Watch observes path and invokes onChange after each burst of write/create
// events. The parent directory is watched rather than the file itself so
// editors that replace-by-rename keep triggering events.
func Watch(path string, onChange func(), log zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{fw: fw, done: make(chan struct{})}
	target := filepath.Clean(path)

	go func() {
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
					fire = timer.C
				} else {
					timer.Reset(watchDebounce)
				}
			case <-fire:
				log.Debug().Str("path", target).Msg("snippet file changed")
				onChange()
				timer = nil
				fire = nil
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("snippet watcher error")
			case <-w.done:
				return
			}
		}
	}()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
