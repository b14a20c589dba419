// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-directory-bot/internal/logger"
	"github.com/MKhiriev/go-directory-bot/internal/service"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the quiet period after the last filesystem event
// before the directory is rebuilt. Editors and atomic-replace writers emit
// bursts of events for a single logical save; one reload per burst is enough.
const defaultDebounce = 400 * time.Millisecond

// blobWatcher watches the encrypted directory blob and triggers a reload
// after each settled change.
type blobWatcher struct {
	path      string
	debounce  time.Duration
	directory service.DirectoryService
	logger    *logger.Logger
}

// NewBlobWatcher constructs a [Worker] that hot-reloads the directory when
// the blob at blobPath changes.
func NewBlobWatcher(blobPath string, debounce time.Duration, directory service.DirectoryService, logger *logger.Logger) Worker {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	logger.Debug().Str("path", blobPath).Dur("debounce", debounce).Msg("creating blob watcher")
	return &blobWatcher{
		path:      filepath.Clean(blobPath),
		debounce:  debounce,
		directory: directory,
		logger:    logger,
	}
}

// Run implements [Worker].
//
// The parent directory is watched rather than the file itself: atomic
// replacement swaps the inode, and a watch on the old inode would go stale
// after the first update.
func (w *blobWatcher) Run(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Err(err).Msg("watcher unavailable, hot reload disabled")
		return
	}
	defer func() {
		_ = watcher.Close()
	}()

	dir := filepath.Dir(w.path)
	if err = watcher.Add(dir); err != nil {
		w.logger.Err(err).Str("dir", dir).Msg("cannot watch blob directory, hot reload disabled")
		return
	}
	w.logger.Info().Str("path", w.path).Msg("watching directory blob")

	timer := time.NewTimer(w.debounce)
	stopTimer(timer)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !w.concernsBlob(event) {
				continue
			}
			w.logger.Debug().Str("op", event.Op.String()).Msg("blob changed, debouncing")
			stopTimer(timer)
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Err(err).Msg("watch error")

		case <-timer.C:
			n := w.directory.Reload(ctx)
			w.logger.Info().Int("records", n).Msg("directory reloaded after blob change")
		}
	}
}

// concernsBlob reports whether event touches the watched blob file.
func (w *blobWatcher) concernsBlob(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Rename) ||
		event.Op.Has(fsnotify.Remove)
}

// stopTimer halts a timer and drains its channel so a following Reset
// cannot observe a stale expiry.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
