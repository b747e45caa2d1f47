package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher signals changes to a single file. It watches the parent
// directory so the file may be deleted and recreated, which is how an
// inbox becomes empty and then fills again.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	debounce time.Duration
	changes  chan struct{}
	logger   *slog.Logger
}

// Watch starts watching path until ctx is cancelled or Close is called.
func Watch(ctx context.Context, path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve inbox path: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create inbox dir: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		fs:       fw,
		path:     abs,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		logger:   logger,
	}
	go w.loop(ctx)
	return w, nil
}

// Changes delivers at most one pending notification at a time. It is
// closed when the watcher stops.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.changes)
	defer w.fs.Close()

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

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			// Writers often truncate then write; wait for the burst to settle.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
