package preview

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces bursts of file events into one rebuild.
const debounceWindow = 500 * time.Millisecond

// startWatcher watches the source tree and triggers a rebuild after each
// burst of changes. Hidden directories and the output directory are skipped;
// watching the output would make every rebuild retrigger itself.
func (s *Server) startWatcher(ctx context.Context, dir string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("resolve watch dir: %w", err)
	}
	absOut, err := filepath.Abs(s.outputDir)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}
	if err := addWatchTree(watcher, absDir, absOut); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	go s.watchLoop(ctx, watcher)
	slog.Info("Watching for source changes", "dir", absDir)
	return watcher, nil
}

// addWatchTree registers root and all subdirectories except hidden ones and
// the skip directory.
func addWatchTree(watcher *fsnotify.Watcher, root, skip string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path == skip {
			return filepath.SkipDir
		}
		if name := d.Name(); path != root && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("Source change detected", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.AfterFunc(debounceWindow, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounceWindow)
			}
		case <-fire:
			timer = nil
			if err := s.triggerRebuild(ctx, "file-change"); err != nil {
				slog.Error("Rebuild after file change failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("File watcher error", "error", err)
		}
	}
}
