package scenefile

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/overlay"
)

// Watch reloads the scene at path whenever it changes and passes the result
// to fn, until ctx is done. A scene that fails to load is reported through
// fn's error and the watch goes on.
//
// The parent directory is watched rather than the file itself, so editors
// that save by renaming a temporary file over path are picked up.
func Watch(ctx context.Context, path string, fn func(*Scene, error)) error {
	return watch(ctx, path, fn, nil)
}

func watch(ctx context.Context, path string, fn func(*Scene, error), ready func()) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("scenefile: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("scenefile: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("scenefile: watch %s: %w", path, err)
	}
	if ready != nil {
		ready()
	}

	log := overlay.Logger().With("path", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug("scenefile: reloading", "op", event.Op.String())
			fn(LoadFile(path))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("scenefile: watcher error", "err", err)
		}
	}
}
