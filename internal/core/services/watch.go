package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
	"github.com/custodia-labs/passage-cli/internal/logger"
)

// Watch emits a domain.WatchEvent whenever an included file is written,
// created, removed or renamed. The parent directories of the included files
// are watched rather than the files themselves; a watch on the file would be
// lost on the rename-and-replace pattern editors use when saving.
//
// Watch blocks until ctx is cancelled. The index is never rebuilt
// implicitly; consumers re-run preprocessing when they choose to.
func (s *Session) Watch(ctx context.Context, events chan domain.WatchEvent) error {
	workspace := s.Workspace()
	if !workspace.IsConfigured() {
		return domain.ErrWorkspaceNotConfigured
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: start watcher: %w", domain.ErrUnexpectedIO, err)
	}
	defer watcher.Close()

	included := make(map[string]struct{}, len(workspace.Included))
	dirs := make(map[string]struct{})
	for _, path := range workspace.Included {
		included[filepath.Clean(path)] = struct{}{}
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("%w: watch %s: %w", domain.ErrUnexpectedIO, dir, err)
		}
	}
	logger.Debug("Watching %d directories for %d included files", len(dirs), len(included))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, tracked := included[filepath.Clean(ev.Name)]; !tracked {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("Included file changed: %s (%s)", ev.Name, ev.Op)
			sendEvent(events, domain.WatchEvent{Path: ev.Name})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
