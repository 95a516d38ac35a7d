package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Reloader is called once per settled burst of file changes.
type Reloader interface {
	Reload(ctx context.Context) error
}

// DatasetWatcher reloads the dataset when its files change on disk.
type DatasetWatcher struct {
	watcher  *fsnotify.Watcher
	reloader Reloader
	dir      string
	file     string // empty when watching a whole directory
	debounce time.Duration
	done     chan struct{}
}

// New watches path, which may be a data directory or a single file. For a
// file the parent directory is watched so that atomic renames are seen.
func New(path string, reloader Reloader, debounce time.Duration) (*DatasetWatcher, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat watch path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	dw := &DatasetWatcher{
		watcher:  w,
		reloader: reloader,
		dir:      path,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	if !info.IsDir() {
		dw.dir = filepath.Dir(path)
		dw.file = filepath.Base(path)
	}
	if dw.debounce <= 0 {
		dw.debounce = 2 * time.Second
	}

	if err := w.Add(dw.dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dw.dir, err)
	}
	return dw, nil
}

// Run blocks until ctx is cancelled.
func (dw *DatasetWatcher) Run(ctx context.Context) {
	defer close(dw.done)
	defer dw.watcher.Close()

	timer := time.NewTimer(dw.debounce)
	timer.Stop()

	log.WithFields(log.Fields{"dir": dw.dir, "file": dw.file}).Info("dataset watcher started")
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info("dataset watcher stopped")
			return

		case ev, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if !dw.relevant(ev) {
				continue
			}
			log.WithFields(log.Fields{"file": ev.Name, "op": ev.Op.String()}).Debug("dataset change detected")
			timer.Reset(dw.debounce)

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("dataset watcher error")

		case <-timer.C:
			if err := dw.reloader.Reload(ctx); err != nil {
				log.WithError(err).Error("dataset reload after change failed")
			}
		}
	}
}

// Done is closed once Run has returned.
func (dw *DatasetWatcher) Done() <-chan struct{} {
	return dw.done
}

func (dw *DatasetWatcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(ev.Name)
	if dw.file != "" {
		return base == dw.file
	}
	return strings.EqualFold(filepath.Ext(base), ".parquet")
}
