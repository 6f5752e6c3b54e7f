package config

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/redline/internal/logging"
)

// defaultDebounce coalesces the event bursts editors emit on save.
const defaultDebounce = 200 * time.Millisecond

// Handler receives each successfully reloaded configuration.
type Handler func(Config)

// Watcher reloads the configuration file when it changes on disk. The
// parent directory is watched rather than the file itself, so atomic
// save-and-rename still triggers a reload.
type Watcher struct {
	path     string
	debounce time.Duration
	handler  Handler
	log      *slog.Logger

	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long to wait after the last event before
// reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatchLogger sets the logger for reload outcomes.
func WithWatchLogger(log *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// Watch starts watching path and calls handler with each reloaded
// configuration. A file that reloads with an error keeps the previous
// configuration and logs the failure.
func Watch(path string, handler Handler, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	// fsnotify reports resolved paths, so match against them.
	dir := filepath.Dir(abs)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	abs = filepath.Join(dir, filepath.Base(abs))

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		debounce: defaultDebounce,
		handler:  handler,
		log:      logging.Nop(),
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() {
	w.once.Do(func() {
		close(w.done)
		w.fsw.Close()
	})
	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watch error", "error", err)

		case <-timer.C:
			cfg, err := Load(w.path)
			if err != nil {
				w.log.Warn("config reload failed", "path", w.path, "error", err)
				continue
			}
			w.log.Info("config reloaded", "path", w.path)
			w.handler(cfg)
		}
	}
}
