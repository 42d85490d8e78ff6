package logger

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// reloadDebounce coalesces the burst of events editors produce on save.
const reloadDebounce = 100 * time.Millisecond

// Watch reloads the config file at path into e whenever it changes, until
// ctx is done. A file that fails to load is reported to log and the current
// configuration stays in place. The error handler is never touched.
//
// The parent directory is watched rather than the file so editors that
// replace the file on save keep triggering reloads.
func (e *Engine) Watch(ctx context.Context, path string, log zerolog.Logger) error {
	return e.WatchWith(ctx, path, log, nil)
}

// WatchWith is Watch with an overlay applied to every reloaded Config
// before it reaches Apply. Callers use it to keep settings that do not come
// from the file, such as command-line overrides. A nil overlay applies the
// file as loaded.
func (e *Engine) WatchWith(ctx context.Context, path string, log zerolog.Logger, overlay func(Config) Config) error {
	dir, file := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watch init: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("config watch add %s: %w", dir, err)
	}
	log.Debug().Str("dir", dir).Str("file", file).Msg("config watcher started")

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("path", path).Msg("config watcher stopped")
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Base(ev.Name), file) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			reload = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("dir", dir).Msg("config watch error")
		case <-reload:
			reload = nil
			cfg, err := LoadConfig(path)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("config reload failed; keeping previous config")
				continue
			}
			if overlay != nil {
				cfg = overlay(cfg)
			}
			e.Apply(cfg)
			log.Info().Str("path", path).Msg("config reloaded")
		}
	}
}
