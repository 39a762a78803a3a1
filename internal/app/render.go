package app

import (
	"github.com/dshills/storefront/internal/store"
	"github.com/dshills/storefront/internal/view"
)

// render composes the page and the open modal onto the surface.
func (app *Application) render() {
	view.Compose(app.surface, app.pageBlock(), app.modalBlock())
}

func (app *Application) pageBlock() view.Block {
	cards := make([]view.CardProps, len(app.ui.cards))
	copy(cards, app.ui.cards)
	if app.ui.screen == ScreenNone && len(cards) > 0 {
		cards[app.ui.cursor].Selected = true
	}

	return view.Page(view.PageProps{
		Counter: len(app.ui.basket),
		Gallery: view.Gallery(cards),
		Locked:  app.ui.screen != ScreenNone,
		Status:  app.pageStatus(),
	})
}

// pageStatus is the status shown under the gallery. While a modal is open
// the status moves into the modal, which would otherwise cover it.
func (app *Application) pageStatus() string {
	if app.ui.screen != ScreenNone {
		return ""
	}
	return app.ui.status
}

func (app *Application) modalBlock() view.Block {
	var content view.Block
	switch app.ui.screen {
	case ScreenPreview:
		content = view.Preview(app.ui.preview)
	case ScreenBasket:
		content = view.Basket(view.BasketPropsFor(app.ui.basket, app.ui.basketSel))
	case ScreenOrder:
		o := app.state.Order()
		content = view.OrderForm(view.OrderFormProps{
			FormState: view.FormState{
				Valid:  app.state.InfoValid(),
				Errors: app.ui.errors.Messages(store.InfoFields...),
				Focus:  app.ui.focus,
			},
			Payment: o.Payment,
			Address: o.Address,
		})
	case ScreenContacts:
		o := app.state.Order()
		content = view.ContactsForm(view.ContactsFormProps{
			FormState: view.FormState{
				Valid:  app.ui.orderReady,
				Errors: app.ui.errors.Messages(store.ContactsFields...),
				Focus:  app.ui.focus,
			},
			Email: o.Email,
			Phone: o.Phone,
		})
	case ScreenSuccess:
		content = view.Success(view.SuccessProps{Total: app.ui.charged})
	default:
		return nil
	}
	return view.Modal(view.ModalProps{Content: content, Status: app.ui.status})
}
