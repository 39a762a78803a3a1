package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/storefront/internal/store"
	"github.com/dshills/storefront/internal/view"
)

// Interrupt payloads posted to the surface by background work.
type (
	catalogLoaded struct {
		products []store.Product
		err      error
	}

	submitDone struct {
		result store.OrderResult
		err    error
	}

	quitRequest struct{}
)

// Run fetches the catalog and processes surface events until the user
// quits, the surface closes or ctx is done.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	stop := context.AfterFunc(ctx, func() {
		_ = app.surface.PostInterrupt(quitRequest{})
	})
	defer stop()

	app.render()
	go app.fetchCatalog(ctx)

	for {
		err := app.handleEvent(ctx, app.surface.PollEvent())
		if errors.Is(err, ErrQuit) {
			app.logger.Info("quit")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// handleEvent processes a surface event.
// Returns ErrQuit if the application should exit.
func (app *Application) handleEvent(ctx context.Context, ev view.Event) error {
	switch ev.Type {
	case view.EventClosed:
		return ErrQuit
	case view.EventResize:
		app.render()
	case view.EventKey:
		return app.handleKey(ctx, ev)
	case view.EventInterrupt:
		return app.handleInterrupt(ctx, ev.Data)
	}
	return nil
}

// handleInterrupt applies the result of background work on the loop
// goroutine.
func (app *Application) handleInterrupt(ctx context.Context, data any) error {
	switch d := data.(type) {
	case quitRequest:
		return ErrQuit
	case catalogLoaded:
		app.logFailure("load catalog", app.finishCatalog(ctx, d))
	case submitDone:
		app.logFailure("finish submit", app.finishSubmit(ctx, d))
	default:
		app.logger.Debug("unknown interrupt", zap.Any("data", data))
	}
	return nil
}

func (app *Application) fetchCatalog(ctx context.Context) {
	ctx, cancel := app.requestContext(ctx)
	defer cancel()

	start := time.Now()
	products, err := app.catalog.FetchCatalog(ctx)
	app.observe("fetch_catalog", start, err)
	app.post(catalogLoaded{products: products, err: err})
}

func (app *Application) finishCatalog(ctx context.Context, d catalogLoaded) error {
	if d.err != nil {
		app.logger.Error("catalog fetch failed", zap.Error(d.err))
		app.ui.status = "Не удалось загрузить каталог"
		app.render()
		return nil
	}
	app.logger.Info("catalog loaded", zap.Int("products", len(d.products)))
	return app.state.LoadCatalog(ctx, d.products)
}

func (app *Application) submitOrder(ctx context.Context, req store.OrderRequest) {
	ctx, cancel := app.requestContext(ctx)
	defer cancel()

	start := time.Now()
	result, err := app.orders.SubmitOrder(ctx, req)
	app.observe("submit_order", start, err)
	app.post(submitDone{result: result, err: err})
}

func (app *Application) finishSubmit(ctx context.Context, d submitDone) error {
	if d.err != nil {
		app.logger.Warn("order rejected", zap.Error(d.err))
		return app.state.FailSubmit(ctx, d.err)
	}
	return app.state.CompleteSubmit(ctx, d.result)
}

func (app *Application) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if app.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, app.requestTimeout)
}

func (app *Application) observe(op string, start time.Time, err error) {
	if app.metrics != nil {
		app.metrics.ObserveRequest(op, time.Since(start), err)
	}
}

// post hands a result to the loop goroutine.
func (app *Application) post(data any) {
	if err := app.surface.PostInterrupt(data); err != nil {
		app.logger.Warn("dropping background result", zap.Error(err))
	}
}

func (app *Application) logFailure(op string, err error) {
	if err != nil {
		app.logger.Warn(op+" failed", zap.Error(err))
	}
}
