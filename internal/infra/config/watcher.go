package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"trustable/internal/domain"
	"trustable/internal/infra/telemetry"
)

const defaultReloadDebounce = 200 * time.Millisecond

// Watcher reloads the config file when it changes and hands valid results to
// OnChange. Invalid edits are logged and ignored.
type Watcher struct {
	path     string
	loader   *Loader
	logger   *zap.Logger
	debounce time.Duration
	onChange func(domain.Config)
}

func NewWatcher(path string, loader *Loader, logger *zap.Logger, onChange func(domain.Config)) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loader == nil {
		loader = NewLoader(logger)
	}
	return &Watcher{
		path:     filepath.Clean(path),
		loader:   loader,
		logger:   logger.Named("config_watcher"),
		debounce: defaultReloadDebounce,
		onChange: onChange,
	}
}

// LogLevelReloader returns an OnChange callback that applies log.level.
func LogLevelReloader(level zap.AtomicLevel, logger *zap.Logger) func(domain.Config) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(cfg domain.Config) {
		next, err := telemetry.ParseLevel(cfg.Log.Level)
		if err != nil {
			return
		}
		if level.Level() == next {
			return
		}
		level.SetLevel(next)
		logger.Info("log level changed", telemetry.EventField(telemetry.EventConfigReload), zap.Stringer("level", next))
	}
}

// Run blocks until ctx is done. The parent directory is watched so that
// editors that replace the file by rename are still observed.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case <-timerChan(timer):
			timer = nil
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	cfg, err := w.loader.Load(ctx, w.path)
	if err != nil {
		w.logger.Warn("config reload failed", telemetry.EventField(telemetry.EventConfigInvalid), zap.Error(err))
		return
	}
	w.logger.Debug("config reloaded", telemetry.EventField(telemetry.EventConfigReload))
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

func timerChan(timer *time.Timer) <-chan time.Time {
	if timer == nil {
		return nil
	}
	return timer.C
}
