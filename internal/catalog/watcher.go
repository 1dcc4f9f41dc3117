// Reloads the dataset when the source file changes on disk.

package catalog

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchSource watches the loader's source file and triggers a reload after
// each change, debounced so one export producing several write events causes
// one reload. A failed reload is logged and the active snapshot keeps
// serving. Blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file itself: most tools
// replace the file by rename, which would silently drop a file-level watch.
func WatchSource(ctx context.Context, loader *Loader, debounce time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	if err := w.Add(filepath.Dir(loader.Path())); err != nil {
		return err
	}

	base := filepath.Base(loader.Path())
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "Error watching source", "err", err)
		case <-timer.C:
			slog.InfoContext(ctx, "Source changed, reloading", "path", loader.Path())
			if _, err := loader.Load(ctx); err != nil {
				slog.ErrorContext(ctx, "Auto-reload failed, keeping previous snapshot", "err", err)
			}
		}
	}
}
