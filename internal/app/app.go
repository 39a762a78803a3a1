// Package app provides the storefront's orchestration layer. It translates
// view intents into store operations, re-renders views from store
// notifications and runs the terminal event loop.
package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dshills/storefront/internal/api"
	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/topic"
	"github.com/dshills/storefront/internal/metrics"
	"github.com/dshills/storefront/internal/store"
	"github.com/dshills/storefront/internal/view"
)

// Screen identifies the content of the modal.
type Screen int

const (
	// ScreenNone means no modal is open and the gallery has focus.
	ScreenNone Screen = iota
	ScreenPreview
	ScreenBasket
	ScreenOrder
	ScreenContacts
	ScreenSuccess
)

func (s Screen) String() string {
	switch s {
	case ScreenNone:
		return "none"
	case ScreenPreview:
		return "preview"
	case ScreenBasket:
		return "basket"
	case ScreenOrder:
		return "order"
	case ScreenContacts:
		return "contacts"
	case ScreenSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Application is the central coordinator for the storefront.
//
// Store operations and rendering happen only on the goroutine that runs
// Run (or, in tests, the goroutine emitting intents). Remote API calls run
// on their own goroutines and hand results back through the surface's
// interrupt queue.
type Application struct {
	bus     *event.Bus
	state   *store.State
	catalog api.Catalog
	orders  api.Orders
	surface view.Surface
	metrics *metrics.Metrics
	logger  *zap.Logger

	subs *subscriptionManager
	ui   uiState

	requestTimeout time.Duration
	running        atomic.Bool
}

// uiState is what the views need beyond the store: the open modal, cursors
// and the props cached from the latest notifications.
type uiState struct {
	screen Screen
	focus  int

	cards     []view.CardProps
	cursor    int
	preview   view.PreviewProps
	previewID string
	basket    []store.BasketEntry
	basketSel int
	errors    store.ValidationErrors
	charged   decimal.Decimal
	status    string

	// orderReady is set by order.ready and cleared by an errors.changed
	// that reports a problem.
	orderReady bool
}

// Deps are the components an Application coordinates.
type Deps struct {
	Bus     *event.Bus
	State   *store.State
	Catalog api.Catalog
	Orders  api.Orders
	Surface view.Surface

	// Metrics is optional.
	Metrics *metrics.Metrics

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// RequestTimeout bounds each remote API call. Zero means no bound.
	RequestTimeout time.Duration
}

// New creates an Application and registers its subscriptions on the bus.
func New(d Deps) (*Application, error) {
	required := []struct {
		name string
		ok   bool
	}{
		{"event bus", d.Bus != nil},
		{"store", d.State != nil},
		{"catalog api", d.Catalog != nil},
		{"orders api", d.Orders != nil},
		{"surface", d.Surface != nil},
	}
	for _, r := range required {
		if !r.ok {
			return nil, &InitError{Component: r.name, Err: ErrComponentNotAvailable}
		}
	}

	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &Application{
		bus:            d.Bus,
		state:          d.State,
		catalog:        d.Catalog,
		orders:         d.Orders,
		surface:        d.Surface,
		metrics:        d.Metrics,
		logger:         logger,
		requestTimeout: d.RequestTimeout,
		ui:             uiState{basketSel: -1},
	}

	app.subs = newSubscriptionManager(app)
	if err := app.subs.setupSubscriptions(); err != nil {
		app.subs.unsubscribeAll()
		return nil, &InitError{Component: "subscriptions", Err: err}
	}
	return app, nil
}

// Close removes the application's subscriptions from the bus.
func (app *Application) Close() {
	app.subs.unsubscribeAll()
}

// Screen returns the modal currently shown.
func (app *Application) Screen() Screen {
	return app.ui.screen
}

// Status returns the last message shown in the status line.
func (app *Application) Status() string {
	return app.ui.status
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Emit publishes an intent and logs any handler failures.
// Views call this; failures never propagate back into the view.
func (app *Application) Emit(ctx context.Context, t topic.Topic, payload any) {
	if err := app.bus.Emit(ctx, t, payload); err != nil {
		app.logger.Warn("intent failed", zap.Stringer("topic", t), zap.Error(err))
	}
}
