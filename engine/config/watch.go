package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file at path whenever it is written or replaced, and delivers each
// valid reload on the returned channel. Invalid reloads are logged and skipped. The channel
// holds at most one pending config; a newer reload replaces an undelivered one.
//
// The containing directory is watched rather than the file so editors that save by rename
// are still seen. The channel is closed when ctx is done.
//
// Parameters:
//   - ctx: stops the watcher when done
//   - path: the config file
//   - logger: receives reload failures
//
// Returns:
//   - <-chan Config: valid reloads
//   - error: error if the watcher cannot be started
func Watch(ctx context.Context, path string, logger *slog.Logger) (<-chan Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	out := make(chan Config, 1)
	target := filepath.Clean(path)

	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					logger.Warn("config reload rejected", "path", path, "err", err)
					continue
				}
				logger.Info("config reloaded", "path", path)
				replace(out, cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "err", err)
			}
		}
	}()

	return out, nil
}

// replace sends cfg, dropping an undelivered older value first.
func replace(out chan Config, cfg Config) {
	select {
	case out <- cfg:
		return
	default:
	}
	select {
	case <-out:
	default:
	}
	select {
	case out <- cfg:
	default:
	}
}
