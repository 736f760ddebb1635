package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file when it changes on disk. Reloads that fail
// to parse or validate are logged and dropped, keeping the previous config
// in effect.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher

	// Debouncing: editors fire several events per save
	pendingMu sync.Mutex
	pending   bool

	reloads chan *Config
}

// NewWatcher creates a watcher for the given config file
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		path:     filepath.Clean(path),
		debounce: 200 * time.Millisecond,
		logger:   logger,
		watcher:  fsw,
		reloads:  make(chan *Config, 4),
	}, nil
}

// Reloads returns the channel of successfully reloaded configs
func (w *Watcher) Reloads() <-chan *Config {
	return w.reloads
}

// Start begins watching the config file for changes
func (w *Watcher) Start(ctx context.Context) error {
	// Watch the directory: editors replace files on save, which drops
	// watches attached to the file itself.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("Config watcher started", slog.String("path", w.path))
	return nil
}

// Stop stops the watcher. The reloads channel closes once the event loop
// drains.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// processEvents handles fsnotify events with debouncing
func (w *Watcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()
	defer close(w.reloads)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.pendingMu.Lock()
			w.pending = true
			w.pendingMu.Unlock()

			w.logger.Debug("Config change detected", slog.String("op", event.Op.String()))

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Config watcher error", slog.String("error", err.Error()))

		case <-ticker.C:
			w.flushPending()
		}
	}
}

// flushPending reloads the file once changes settle
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if !w.pending {
		w.pendingMu.Unlock()
		return
	}
	w.pending = false
	w.pendingMu.Unlock()

	cfg, err := LoadFromFile(w.path)
	if err != nil {
		w.logger.Warn("Failed to reload config", slog.String("path", w.path), slog.String("error", err.Error()))
		return
	}
	if err := cfg.Validate(); err != nil {
		w.logger.Warn("Reloaded config invalid, keeping previous", slog.String("error", err.Error()))
		return
	}

	select {
	case w.reloads <- cfg:
		w.logger.Info("Config reloaded", slog.String("path", w.path))
	default:
		w.logger.Warn("Reload channel full, dropping config update")
	}
}
