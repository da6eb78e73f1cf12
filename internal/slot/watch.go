package slot

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

// watchFiles watches dir for writes to any of names and, once the burst has
// settled for debounce, calls snapshot and delivers its result. Watching the
// directory rather than the file survives the temp-file + rename writes used
// by the file backend.
func watchFiles(ctx context.Context, logger *log.Logger, dir string, names []string, debounce time.Duration, snapshot func() (Change, bool)) (<-chan Change, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[filepath.Clean(name)] = true
	}

	events := make(chan Change, 16)

	go func() {
		defer close(events)
		defer func() { _ = watcher.Close() }()

		var timer *time.Timer
		var fire <-chan time.Time
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !wanted[filepath.Clean(event.Name)] {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				change, ok := snapshot()
				if !ok {
					continue
				}
				select {
				case events <- change:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("slot watcher error", "dir", dir, "err", err)
			}
		}
	}()

	return events, nil
}

func loggerOrDefault(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.Default()
}
