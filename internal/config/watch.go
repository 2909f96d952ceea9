package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file at path whenever it is written or replaced
// and passes the result to onChange. Reload failures go to onError, which may
// be nil. Watch blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file so that editors that
// save by rename are still observed.
func Watch(ctx context.Context, path string, onChange func(*Config), onError func(error)) error {
	if onError == nil {
		onError = func(error) {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			cfg, err := LoadFromPath(target)
			if err != nil {
				onError(err)
				continue
			}
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onError(fmt.Errorf("config watcher: %w", err))
		}
	}
}
