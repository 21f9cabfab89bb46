package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events an editor produces on save.
const watchDebounce = 150 * time.Millisecond

// fileWatcher reports changes to a fixed set of files.
//
// It watches the parent directories rather than the files so that editors
// which save by renaming a temporary file over the original keep being
// followed.
type fileWatcher struct {
	w       *fsnotify.Watcher
	targets map[string]bool
}

// newFileWatcher starts watching paths. Events are delivered by Run.
func newFileWatcher(paths ...string) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start watcher: %w", err)
	}
	fw := &fileWatcher{w: w, targets: make(map[string]bool, len(paths))}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, err
		}
		fw.targets[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	return fw, nil
}

// Run calls fn with the changed path once a burst of writes to a watched
// file has settled. It returns ctx.Err() when ctx is cancelled.
func (fw *fileWatcher) Run(ctx context.Context, fn func(changed string)) error {
	var (
		settle  <-chan time.Time
		changed string
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if !fw.targets[filepath.Clean(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			changed = ev.Name
			settle = time.After(watchDebounce)
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			loggerFromContext(ctx).Warn("watch error", "error", err)
		case <-settle:
			settle = nil
			fn(changed)
		}
	}
}

// Close stops watching.
func (fw *fileWatcher) Close() error {
	return fw.w.Close()
}
