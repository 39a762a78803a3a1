package view

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dshills/storefront/internal/store"
)

// CardProps drives a catalog card.
type CardProps struct {
	ID       string
	Title    string
	Category store.Category
	Price    decimal.NullDecimal
	InBasket bool
	Selected bool
}

// CardPropsFor builds card props from a product.
func CardPropsFor(p store.Product) CardProps {
	return CardProps{
		ID:       p.ID,
		Title:    p.Title,
		Category: p.Category,
		Price:    p.Price,
		InBasket: p.InBasket,
	}
}

// Card renders a single gallery line.
func Card(p CardProps) Line {
	mark := " "
	if p.InBasket {
		mark = "✓"
	}
	st := StylePlain
	if p.Selected {
		st = StyleSelected
	}
	return styled(fmt.Sprintf("%s %s [%s] %s", mark, p.Title, p.Category, FormatPrice(p.Price)), st)
}

// Gallery renders the catalog, one card per line.
func Gallery(cards []CardProps) Block {
	if len(cards) == 0 {
		return Block{styled("Каталог загружается…", StyleMuted)}
	}
	out := make(Block, len(cards))
	for i, c := range cards {
		out[i] = Card(c)
	}
	return out
}

// PreviewProps drives the product preview.
type PreviewProps struct {
	Title       string
	Category    store.Category
	Description string
	Image       string
	Price       decimal.NullDecimal
	InBasket    bool
}

// PreviewPropsFor builds preview props from a product.
func PreviewPropsFor(p store.Product) PreviewProps {
	return PreviewProps{
		Title:       p.Title,
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		InBasket:    p.InBasket,
	}
}

// Button returns the add/remove toggle. A priceless product cannot be bought.
func (p PreviewProps) Button() Button {
	switch {
	case !p.Price.Valid:
		return Button{Label: "Недоступно", Disabled: true}
	case p.InBasket:
		return Button{Label: "Удалить из корзины", Focused: true}
	default:
		return Button{Label: "Купить", Focused: true}
	}
}

// Preview renders a product in full.
func Preview(p PreviewProps) Block {
	out := Block{
		styled(string(p.Category), StyleMuted),
		styled(p.Title, StyleTitle),
	}
	if p.Description != "" {
		out = append(out, text(p.Description))
	}
	if p.Image != "" {
		out = append(out, styled(p.Image, StyleMuted))
	}
	return append(out,
		text(""),
		text(FormatPrice(p.Price)),
		p.Button().Line(),
	)
}
