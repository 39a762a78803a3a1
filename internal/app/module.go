package app

import (
	"context"
	"errors"
	"io"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dshills/storefront/internal/api"
	"github.com/dshills/storefront/internal/config"
	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/logging"
	"github.com/dshills/storefront/internal/metrics"
	"github.com/dshills/storefront/internal/store"
	"github.com/dshills/storefront/internal/view"
)

// Options configures the fx application.
type Options struct {
	// Config is the loaded configuration.
	Config config.Config

	// ConfigPath enables hot reload of the log level when set.
	ConfigPath string

	// LogOutput receives log lines. Defaults to stderr.
	LogOutput io.Writer

	// Surface is where the UI is drawn.
	Surface view.Surface
}

// Module provides every storefront component and starts the background
// services. The Application itself is run by the caller.
func Module(opts Options) fx.Option {
	return fx.Options(
		fx.Supply(opts.Config),
		fx.Provide(
			func() view.Surface { return opts.Surface },
			func(cfg config.Config) (*zap.Logger, zap.AtomicLevel, error) {
				lc := cfg.LoggingConfig()
				if opts.LogOutput != nil {
					lc.Output = opts.LogOutput
				}
				return logging.New(lc)
			},
			provideBus,
			provideState,
			provideClient,
			provideMetrics,
			provideApplication,
		),
		fx.Invoke(registerSurface),
		fx.Invoke(registerMetricsServer),
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger, level zap.AtomicLevel) {
			registerConfigWatcher(lc, opts.ConfigPath, logger, level)
		}),
	)
}

// NewFx builds the fx application for opts. The returned Application is
// ready to Run once the fx application has started.
func NewFx(opts Options, extra ...fx.Option) (*fx.App, *Application) {
	var application *Application
	fxOpts := []fx.Option{
		Module(opts),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			l := &fxevent.ZapLogger{Logger: logging.Component(logger, "fx")}
			l.UseLogLevel(zap.DebugLevel)
			return l
		}),
		fx.Populate(&application),
	}
	fxApp := fx.New(append(fxOpts, extra...)...)
	return fxApp, application
}

func provideBus(logger *zap.Logger) *event.Bus {
	return event.NewBus(event.WithLogger(logging.Component(logger, "event")))
}

func provideState(bus *event.Bus, logger *zap.Logger) *store.State {
	return store.New(bus, store.WithLogger(logging.Component(logger, "store")))
}

func provideClient(cfg config.Config, logger *zap.Logger) *api.Client {
	return api.NewClient(cfg.API.BaseURL,
		api.WithCDN(cfg.API.CDNURL),
		api.WithLogger(logging.Component(logger, "api")),
	)
}

func provideMetrics(bus *event.Bus) *metrics.Metrics {
	return metrics.New(bus)
}

// ApplicationParams are the components provideApplication depends on.
type ApplicationParams struct {
	fx.In

	Config  config.Config
	Logger  *zap.Logger
	Bus     *event.Bus
	State   *store.State
	Client  *api.Client
	Surface view.Surface
	Metrics *metrics.Metrics `optional:"true"`
}

func provideApplication(p ApplicationParams, lc fx.Lifecycle) (*Application, error) {
	application, err := New(Deps{
		Bus:            p.Bus,
		State:          p.State,
		Catalog:        p.Client,
		Orders:         p.Client,
		Surface:        p.Surface,
		Metrics:        p.Metrics,
		Logger:         logging.Component(p.Logger, "app"),
		RequestTimeout: p.Config.API.Timeout,
	})
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			application.Close()
			return nil
		},
	})
	return application, nil
}

func registerSurface(lc fx.Lifecycle, s view.Surface) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if s == nil {
				return &InitError{Component: "surface", Err: ErrComponentNotAvailable}
			}
			return s.Init()
		},
		OnStop: func(context.Context) error {
			s.Fini()
			return nil
		},
	})
}

func registerMetricsServer(lc fx.Lifecycle, cfg config.Config, m *metrics.Metrics, logger *zap.Logger) {
	if cfg.Metrics.Addr == "" {
		return
	}
	background(lc, "metrics", func(ctx context.Context) error {
		return m.Serve(ctx, cfg.Metrics.Addr, logging.Component(logger, "metrics"))
	}, logger)
}

// registerConfigWatcher flips the log level whenever the config file changes.
func registerConfigWatcher(lc fx.Lifecycle, path string, logger *zap.Logger, level zap.AtomicLevel) {
	if path == "" {
		return
	}
	log := logging.Component(logger, "config")
	background(lc, "config watcher", func(ctx context.Context) error {
		return config.Watch(ctx, config.Options{Path: path}, log, func(cfg config.Config) {
			if err := logging.SetLevel(level, cfg.Logging.Level); err != nil {
				log.Warn("ignoring log level", zap.String("level", cfg.Logging.Level), zap.Error(err))
				return
			}
			log.Info("log level changed", zap.String("level", cfg.Logging.Level))
		})
	}, logger)
}

// background runs fn from OnStart until OnStop cancels it.
func background(lc fx.Lifecycle, name string, fn func(context.Context) error, logger *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error(name+" stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
