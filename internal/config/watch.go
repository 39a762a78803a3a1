package config

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dshills/storefront/internal/config/watcher"
)

// Watch reloads the configuration whenever the file at opts.Path changes
// and passes each valid result to fn. Invalid or removed files are logged
// and skipped. Watch blocks until ctx is done.
func Watch(ctx context.Context, opts Options, logger *zap.Logger, fn func(Config)) error {
	if opts.Path == "" {
		return errors.New("watch: no config file")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w, err := watcher.New(watcher.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := w.Watch(opts.Path); err != nil {
		return err
	}

	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			logger.Warn("config file gone, keeping current settings", zap.String("path", ev.Path))
			return
		}
		cfg, err := Load(opts)
		if err != nil {
			logger.Warn("config reload failed", zap.String("path", ev.Path), zap.Error(err))
			return
		}
		logger.Info("config reloaded", zap.String("path", ev.Path), zap.Stringer("op", ev.Op))
		fn(cfg)
	})

	return w.Run(ctx)
}
