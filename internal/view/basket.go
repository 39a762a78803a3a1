package view

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dshills/storefront/internal/store"
)

// BasketItem is one numbered basket row.
type BasketItem struct {
	Index int
	Title string
	Price decimal.NullDecimal
}

// BasketProps drives the basket.
type BasketProps struct {
	Items []BasketItem
	Total decimal.Decimal

	// Selected is the index into Items of the highlighted row, or -1.
	Selected int
}

// BasketPropsFor numbers entries from 1 and totals them.
func BasketPropsFor(entries []store.BasketEntry, selected int) BasketProps {
	items := make([]BasketItem, len(entries))
	for i, e := range entries {
		items[i] = BasketItem{Index: i + 1, Title: e.Title, Price: e.Price}
	}
	return BasketProps{Items: items, Total: store.Sum(entries), Selected: selected}
}

// SubmitButton is disabled while the basket is empty.
func (p BasketProps) SubmitButton() Button {
	return Button{Label: "Оформить", Disabled: len(p.Items) == 0, Focused: len(p.Items) > 0}
}

// Basket renders the basket contents and total.
func Basket(p BasketProps) Block {
	out := Block{styled("Корзина", StyleTitle)}
	if len(p.Items) == 0 {
		out = append(out, styled("Корзина пуста", StyleMuted))
	}
	for i, item := range p.Items {
		st := StylePlain
		if i == p.Selected {
			st = StyleSelected
		}
		out = append(out, styled(fmt.Sprintf("%d. %s  %s", item.Index, item.Title, FormatPrice(item.Price)), st))
	}
	return append(out,
		text(""),
		text(FormatAmount(p.Total)),
		p.SubmitButton().Line(),
	)
}

// SuccessProps drives the confirmation screen.
type SuccessProps struct {
	Total decimal.Decimal
}

// Success renders the confirmation with the total charged by the server.
func Success(p SuccessProps) Block {
	return Block{
		styled("Заказ оформлен", StyleTitle),
		text("Списано " + FormatAmount(p.Total)),
		text(""),
		Button{Label: "За новыми покупками!", Focused: true}.Line(),
	}
}
