package highlight

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tartampluch/go-ethiocal/internal/config"
)

// Watcher calls OnChange after a local highlight source is written or
// replaced. Bursts of events are collapsed into one call.
type Watcher struct {
	path     string
	onChange func()
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// NewWatcher watches the directory holding path, so editors that save by
// renaming a temp file over it are still seen.
func NewWatcher(path string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrWatcherInit, err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrWatcherInit, err)
	}
	return &Watcher{
		path:     path,
		onChange: onChange,
		debounce: config.WatchDebounce,
		fsw:      fsw,
	}, nil
}

// Run dispatches events until ctx is cancelled, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompWatcher, config.LogKeyPath, w.path)
	log.Info(config.MsgWatchStart)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		_ = w.fsw.Close()
	}()

	target := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				log.Debug(config.MsgWatchChange)
				w.onChange()
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn(config.MsgWatchError, config.LogKeyError, err)
		}
	}
}
