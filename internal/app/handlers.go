package app

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/dshills/storefront/internal/api"
	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/store"
	"github.com/dshills/storefront/internal/view"
)

// Intent handlers. Each translates one view intent into store operations;
// modal transitions go back through the bus so they run after the store's
// own notifications.

func (app *Application) handleCardSelect(ctx context.Context, id string) error {
	if err := app.state.SelectPreview(ctx, id); err != nil {
		return err
	}
	return app.bus.Emit(ctx, TopicModalOpen, ScreenPreview)
}

func (app *Application) handleCardAdd(ctx context.Context, id string) error {
	p, ok := app.state.Product(id)
	if !ok {
		return &store.NotFoundError{ID: id}
	}
	return app.state.AddToBasket(ctx, p.Entry())
}

func (app *Application) handleCardRemove(ctx context.Context, id string) error {
	return app.state.RemoveFromBasket(ctx, id)
}

func (app *Application) handleBasketOpen(ctx context.Context, _ event.Event) error {
	return app.bus.Emit(ctx, TopicModalOpen, ScreenBasket)
}

func (app *Application) handleBasketSubmit(ctx context.Context, _ event.Event) error {
	if app.state.Count() == 0 {
		return store.ErrCheckoutNotReady
	}
	if err := app.state.SnapshotBasketIntoOrder(); err != nil {
		return err
	}
	return app.bus.Emit(ctx, TopicModalOpen, ScreenOrder)
}

// handleFieldChange serves both order.*.change and contacts.*.change.
// A field is accepted only on the form that shows it.
func (app *Application) handleFieldChange(ctx context.Context, evt event.Event) error {
	change, ok := evt.Payload.(store.FieldChange)
	if !ok {
		return &event.PayloadTypeError{
			Topic: evt.Topic.String(),
			Want:  fmt.Sprintf("%T", change),
			Got:   fmt.Sprintf("%T", evt.Payload),
		}
	}

	segments := evt.Topic.Segments()
	name := change.Field
	if name == "" {
		name = segments[1]
	}
	field, err := store.ParseOrderField(name)
	if err != nil {
		return err
	}

	form := store.InfoFields
	if segments[0] == "contacts" {
		form = store.ContactsFields
	}
	if !slices.Contains(form, field) {
		return fmt.Errorf("%w: %q is not on the %s form", store.ErrUnknownField, field, segments[0])
	}

	return app.state.SetOrderField(ctx, field, change.Value)
}

func (app *Application) handleOrderSubmit(ctx context.Context, _ event.Event) error {
	if !app.state.InfoValid() {
		return store.ErrCheckoutNotReady
	}
	return app.bus.Emit(ctx, TopicModalOpen, ScreenContacts)
}

// handleContactsSubmit starts the submission. The API call runs on its own
// goroutine and its result comes back through the event loop.
func (app *Application) handleContactsSubmit(ctx context.Context, _ event.Event) error {
	req, err := app.state.BeginSubmit(ctx)
	if err != nil {
		return err
	}
	app.ui.status = "Оформляем заказ…"
	app.render()

	go app.submitOrder(ctx, req)
	return nil
}

func (app *Application) handleModalOpen(_ context.Context, s Screen) error {
	app.ui.screen = s
	app.ui.focus = 0
	if s == ScreenBasket && len(app.ui.basket) > 0 {
		app.ui.basketSel = 0
	}
	app.logger.Debug("modal opened", zap.Stringer("screen", s))
	app.render()
	return nil
}

func (app *Application) handleModalClose(_ context.Context, _ event.Event) error {
	app.ui.screen = ScreenNone
	app.ui.focus = 0
	app.render()
	return nil
}

// Notification handlers. Each caches props from the payload and re-renders.

func (app *Application) onCatalogChanged(_ context.Context, products []store.Product) error {
	app.ui.cards = cardsFor(products)
	app.ui.cursor = clamp(app.ui.cursor, len(app.ui.cards))
	if len(products) > 0 && app.ui.status != "" {
		app.ui.status = ""
	}
	app.render()
	return nil
}

func (app *Application) onPreviewChanged(_ context.Context, p store.Product) error {
	app.ui.preview = view.PreviewPropsFor(p)
	app.ui.previewID = p.ID
	app.render()
	return nil
}

// onBasketChanged also refreshes the cards, whose basket marks follow the
// basket.
func (app *Application) onBasketChanged(_ context.Context, entries []store.BasketEntry) error {
	app.ui.basket = entries
	app.ui.cards = cardsFor(app.state.Catalog())
	if len(entries) == 0 {
		app.ui.basketSel = -1
	} else {
		app.ui.basketSel = clamp(app.ui.basketSel, len(entries))
	}
	app.render()
	return nil
}

func (app *Application) onErrorsChanged(_ context.Context, errs store.ValidationErrors) error {
	app.ui.errors = errs
	if len(errs) > 0 {
		app.ui.orderReady = false
	}
	app.render()
	return nil
}

func (app *Application) onOrderReady(_ context.Context, _ store.Order) error {
	app.ui.orderReady = true
	app.render()
	return nil
}

func (app *Application) onOrderSubmitted(_ context.Context, res store.OrderResult) error {
	app.ui.charged = res.Total
	app.ui.errors = nil
	app.ui.orderReady = false
	app.ui.status = ""
	app.ui.screen = ScreenSuccess
	app.ui.focus = 0
	app.render()
	return nil
}

func (app *Application) onOrderFailed(_ context.Context, f store.SubmitFailure) error {
	msg := "сервер недоступен"
	var rejected *api.ValidationError
	if errors.As(f.Err, &rejected) && rejected.Message != "" {
		msg = rejected.Message
	}
	app.ui.status = "Не удалось оформить заказ: " + msg
	app.render()
	return nil
}

func cardsFor(products []store.Product) []view.CardProps {
	cards := make([]view.CardProps, len(products))
	for i, p := range products {
		cards[i] = view.CardPropsFor(p)
	}
	return cards
}

// clamp limits i to [0, n). It returns 0 when n is 0.
func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
