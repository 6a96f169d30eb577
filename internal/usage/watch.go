package usage

import (
	"context"

	"github.com/fsnotify/fsnotify"
)

// WatchForExternalChanges watches the usage store's directory so that if
// another process deletes or renames usage.json, the Tracker logs a warning
// and drops its in-memory session list; the next Track call writes the file
// again. Truncation in place is not detected.
// Grounded on AleutianLocal's graph.FileWatcher event-loop shape.
func (t *Tracker) WatchForExternalChanges(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := dirOf(t.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return err
	}

	t.mu.Lock()
	t.watching = true
	t.mu.Unlock()

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != t.path {
					continue
				}
				if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
					t.log.Warn("usage store removed externally, will recreate on next write", "path", t.path)
					t.mu.Lock()
					t.store.Sessions = nil
					t.mu.Unlock()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				t.log.Warn("usage store watch error", "error", err)
			}
		}
	}()

	return nil
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
