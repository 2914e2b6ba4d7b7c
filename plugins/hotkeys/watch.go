package hotkeys

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"quasimode/log"
	"quasimode/ui/debounce"

	"github.com/fsnotify/fsnotify"
)

// WatchOptions tunes Watch.
type WatchOptions struct {
	// Debounce collapses bursts of file events into one callback.
	Debounce time.Duration
	// PollInterval is the fallback check for changes that the watcher
	// misses, e.g. on network drives. Zero disables polling.
	PollInterval time.Duration
}

func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		Debounce:     200 * time.Millisecond,
		PollInterval: 2 * time.Second,
	}
}

// Watch calls onChange whenever the hotkey file at path may have been
// created, written, renamed or removed, until ctx is done. The directory is
// watched rather than the file so that editors which replace the file on
// save are followed.
func Watch(ctx context.Context, path string, opts WatchOptions, onChange func()) error {
	logger := log.For("hotkeys")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logger.InfoLog.Printf("watching %s for changes", path)

	debouncer := debounce.New(opts.Debounce)
	defer debouncer.Cancel()
	errorsEvery := log.NewEvery(time.Minute)

	var pollC <-chan time.Time
	if opts.PollInterval > 0 {
		ticker := time.NewTicker(opts.PollInterval)
		defer ticker.Stop()
		pollC = ticker.C
	}
	lastMod, lastExists := statModTime(path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				debouncer.Trigger(onChange)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errorsEvery.ShouldLog() {
				logger.ErrorLog.Printf("watcher error: %v", err)
			}

		case <-pollC:
			mod, exists := statModTime(path)
			if exists != lastExists || !mod.Equal(lastMod) {
				lastMod, lastExists = mod, exists
				debouncer.Trigger(onChange)
			}

		case <-ctx.Done():
			// a change seen just before shutdown is still reported
			if debouncer.IsActive() {
				debouncer.Flush()
			}
			return ctx.Err()
		}
	}
}

func statModTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
