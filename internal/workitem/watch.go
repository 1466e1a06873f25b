package workitem

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zhubert/loom/internal/errors"
	"github.com/zhubert/loom/internal/logger"
)

// WatchDebounce is how long the file must be quiet before a reload.
const WatchDebounce = 150 * time.Millisecond

// Watch reloads s from path whenever the file changes and calls fn with the
// outcome. The parent directory is watched so editors that save by rename
// are seen. Watch blocks until ctx is done.
func Watch(ctx context.Context, s *MemorySource, path string, fn func(error)) error {
	log := logger.WithComponent("workitem")

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.E(errors.Op("workitem.Watch"), errors.KindIO, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.E(errors.Op("workitem.Watch"), errors.KindIO, err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Warn("closing watcher", "error", err)
		}
	}()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.E(errors.Op("workitem.Watch"), errors.KindIO, err)
	}
	log.Debug("watching work items", "path", abs)

	timer := time.NewTimer(WatchDebounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(WatchDebounce)
		case <-timer.C:
			err := s.Reload(abs)
			if err != nil {
				log.Warn("reload failed", "path", abs, "error", err)
			}
			if fn != nil {
				fn(err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)
		}
	}
}
