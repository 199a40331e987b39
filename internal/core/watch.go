package core

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce batches the burst of events an editor or export tool
// produces when rewriting a file.
const DefaultWatchDebounce = 300 * time.Millisecond

// Watcher reloads a local origin into a Directory whenever the file changes.
type Watcher struct {
	dir      *Directory
	origin   string
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// NewWatcher watches the file behind origin. The parent directory is watched
// rather than the file itself so atomic replace-by-rename is seen too.
func NewWatcher(dir *Directory, files *FileSource, origin string, debounce time.Duration) (*Watcher, error) {
	if IsRemoteOrigin(origin) {
		return nil, fmt.Errorf("watch %s: only local files can be watched", origin)
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	path := files.Path(origin)
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	return &Watcher{
		dir:      dir,
		origin:   origin,
		path:     filepath.Clean(path),
		debounce: debounce,
		watcher:  fw,
	}, nil
}

// Run reloads on change until ctx is done. It closes the underlying watcher
// before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	logger := slog.Default().With("origin", w.origin, "path", w.path)
	logger.Info("watching directory file")

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			logger.Info("directory file changed, reloading")
			// errors are kept on the Directory for display
			_ = w.dir.Load(ctx, w.origin)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "error", err)
		}
	}
}
