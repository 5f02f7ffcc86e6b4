package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchFile calls fn whenever path was created or written, once the
// file has been quiet for delay. It returns when ctx is done. Errors
// of fn are logged and do not stop the watch.
func watchFile(ctx context.Context, logger *zap.Logger, path string, delay time.Duration, fn func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	path = filepath.Clean(path)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			logger.Debug("input changed", zap.String("path", path), zap.Stringer("op", event.Op))
			fire = time.After(delay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))

		case <-fire:
			fire = nil
			if err := fn(); err != nil {
				logger.Error("redraw failed", zap.Error(err))
			}
		}
	}
}
