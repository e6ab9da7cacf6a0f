package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// defaultDebounce collapses the bursts of writes editors produce when
// saving a file.
const defaultDebounce = 200 * time.Millisecond

// Watcher reloads the manager's config when the file changes on disk, so
// edits made in an external editor apply without restarting.
type Watcher struct {
	mgr      *Manager
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *logrus.Entry

	mu         sync.Mutex
	lastChange time.Time

	stop chan struct{}
	done chan struct{}
}

// NewWatcher watches the directory containing the manager's config file.
// Watching the directory rather than the file survives editors that replace
// the file by rename.
func NewWatcher(mgr *Manager) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(mgr.Path())); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		mgr:      mgr,
		watcher:  fsw,
		debounce: defaultDebounce,
		log:      logrus.WithField("component", "config-watcher"),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.mgr.Path()) {
				continue
			}
			w.handleChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Error("watcher error")
		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) handleChange() {
	w.mu.Lock()
	if time.Since(w.lastChange) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.lastChange = time.Now()
	w.mu.Unlock()

	// Editors that write by rename may fire before the new content lands.
	time.Sleep(50 * time.Millisecond)

	w.log.Info("config file changed, reloading")
	if err := w.mgr.Reload(); err != nil {
		w.log.WithError(err).Error("reload failed")
	}
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	close(w.stop)
	err := w.watcher.Close()
	<-w.done
	return err
}
