package commands

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thoreinstein/catlog/internal/errors"
	"github.com/thoreinstein/catlog/internal/logging"
)

// followDebounce coalesces bursts of events from a single rewrite.
const followDebounce = 50 * time.Millisecond

// followLog prints lines appended to path until ctx is done. printed is the
// number of lines already shown. The directory is watched rather than the
// file because the logger replaces the file by rename on every record.
func followLog(ctx context.Context, w io.Writer, path string, printed int, raw bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "watching %s", dir)
	}

	log := logging.FromContext(ctx)
	target := filepath.Clean(path)

	timer := time.NewTimer(followDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(followDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("file watcher error", "error", err)
		case <-timer.C:
			lines, err := readLogLines(path)
			if err != nil {
				log.Debug("re-reading log file", "path", path, "error", err)
				continue
			}
			// A shorter file means the logger was re-initialized.
			if len(lines) < printed {
				printed = 0
			}
			printLines(w, lines[printed:], raw)
			printed = len(lines)
			log.Log(ctx, logging.LevelTrace, "printed log lines", "total", printed)
		}
	}
}
