package app

import (
	"context"
	"slices"

	"github.com/dshills/storefront/internal/event/topic"
	"github.com/dshills/storefront/internal/store"
	"github.com/dshills/storefront/internal/view"
)

// handleKey turns a key press into an intent for the current screen.
func (app *Application) handleKey(ctx context.Context, ev view.Event) error {
	if ev.Key == view.KeyCtrlC {
		return ErrQuit
	}
	if ev.Key == view.KeyEscape && app.ui.screen != ScreenNone {
		app.Emit(ctx, TopicModalClose, nil)
		return nil
	}

	switch app.ui.screen {
	case ScreenNone:
		return app.galleryKey(ctx, ev)
	case ScreenPreview:
		app.previewKey(ctx, ev)
	case ScreenBasket:
		app.basketKey(ctx, ev)
	case ScreenOrder:
		app.orderKey(ctx, ev)
	case ScreenContacts:
		app.contactsKey(ctx, ev)
	case ScreenSuccess:
		if ev.Key == view.KeyEnter {
			app.Emit(ctx, TopicModalClose, nil)
		}
	}
	return nil
}

func (app *Application) galleryKey(ctx context.Context, ev view.Event) error {
	switch {
	case ev.Key == view.KeyUp || ev.Rune == 'k':
		app.ui.cursor = clamp(app.ui.cursor-1, len(app.ui.cards))
		app.render()
	case ev.Key == view.KeyDown || ev.Rune == 'j':
		app.ui.cursor = clamp(app.ui.cursor+1, len(app.ui.cards))
		app.render()
	case ev.Key == view.KeyEnter:
		if len(app.ui.cards) > 0 {
			app.Emit(ctx, TopicCardSelect, app.ui.cards[app.ui.cursor].ID)
		}
	case ev.Rune == 'b':
		app.Emit(ctx, TopicBasketOpen, nil)
	case ev.Rune == 'q':
		return ErrQuit
	}
	return nil
}

func (app *Application) previewKey(ctx context.Context, ev view.Event) {
	if ev.Key != view.KeyEnter || app.ui.preview.Button().Disabled {
		return
	}
	if app.ui.preview.InBasket {
		app.Emit(ctx, TopicCardRemove, app.ui.previewID)
	} else {
		app.Emit(ctx, TopicCardAdd, app.ui.previewID)
	}
}

func (app *Application) basketKey(ctx context.Context, ev view.Event) {
	n := len(app.ui.basket)
	switch {
	case ev.Key == view.KeyUp && n > 0:
		app.ui.basketSel = clamp(app.ui.basketSel-1, n)
		app.render()
	case ev.Key == view.KeyDown && n > 0:
		app.ui.basketSel = clamp(app.ui.basketSel+1, n)
		app.render()
	case ev.Key == view.KeyDelete || ev.Key == view.KeyBackspace || ev.Rune == 'd':
		if app.ui.basketSel >= 0 && app.ui.basketSel < n {
			app.Emit(ctx, TopicCardRemove, app.ui.basket[app.ui.basketSel].ID)
		}
	case ev.Key == view.KeyEnter && n > 0:
		app.Emit(ctx, TopicBasketSubmit, nil)
	}
}

func (app *Application) orderKey(ctx context.Context, ev view.Event) {
	if app.moveFocus(ev, view.OrderFocusCount) {
		return
	}
	if ev.Key == view.KeyEnter {
		if app.state.InfoValid() {
			app.Emit(ctx, TopicOrderSubmit, nil)
		} else {
			app.moveFocus(view.Event{Key: view.KeyTab}, view.OrderFocusCount)
		}
		return
	}

	switch app.ui.focus {
	case view.OrderFocusPayment:
		if ev.Key == view.KeyLeft || ev.Key == view.KeyRight || ev.Rune == ' ' {
			delta := 1
			if ev.Key == view.KeyLeft {
				delta = -1
			}
			app.Emit(ctx, OrderFieldTopic(store.FieldPayment), store.FieldChange{
				Field: string(store.FieldPayment),
				Value: string(nextPayment(app.state.Order().Payment, delta)),
			})
		}
	case view.OrderFocusAddress:
		app.editField(ctx, ev, OrderFieldTopic(store.FieldAddress), store.FieldAddress)
	}
}

func (app *Application) contactsKey(ctx context.Context, ev view.Event) {
	if app.state.Stage() == store.StageSubmitted {
		return
	}
	if app.moveFocus(ev, view.ContactsFocusCount) {
		return
	}
	if ev.Key == view.KeyEnter {
		if app.ui.orderReady {
			app.Emit(ctx, TopicContactsSubmit, nil)
		} else {
			app.moveFocus(view.Event{Key: view.KeyTab}, view.ContactsFocusCount)
		}
		return
	}

	switch app.ui.focus {
	case view.ContactsFocusEmail:
		app.editField(ctx, ev, ContactsFieldTopic(store.FieldEmail), store.FieldEmail)
	case view.ContactsFocusPhone:
		app.editField(ctx, ev, ContactsFieldTopic(store.FieldPhone), store.FieldPhone)
	}
}

// moveFocus handles focus keys. It reports whether ev was one.
func (app *Application) moveFocus(ev view.Event, n int) bool {
	switch ev.Key {
	case view.KeyTab, view.KeyDown:
		app.ui.focus = view.NextFocus(app.ui.focus, 1, n)
	case view.KeyBacktab, view.KeyUp:
		app.ui.focus = view.NextFocus(app.ui.focus, -1, n)
	default:
		return false
	}
	app.render()
	return true
}

// editField appends a typed rune to, or deletes the last rune of, a text
// field and emits the change intent.
func (app *Application) editField(ctx context.Context, ev view.Event, t topic.Topic, f store.OrderField) {
	value := []rune(app.state.Order().Field(f))
	switch ev.Key {
	case view.KeyRune:
		value = append(value, ev.Rune)
	case view.KeyBackspace:
		if len(value) == 0 {
			return
		}
		value = value[:len(value)-1]
	default:
		return
	}
	app.Emit(ctx, t, store.FieldChange{Field: string(f), Value: string(value)})
}

// nextPayment cycles through the payment buttons. From no selection it
// picks the first (delta 1) or last (delta -1) button.
func nextPayment(current store.Payment, delta int) store.Payment {
	i := slices.Index(view.Payments, current)
	n := len(view.Payments)
	if i < 0 {
		if delta < 0 {
			return view.Payments[n-1]
		}
		return view.Payments[0]
	}
	return view.Payments[view.NextFocus(i, delta, n)]
}
