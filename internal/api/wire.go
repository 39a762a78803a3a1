package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/dshills/storefront/internal/store"
)

type productList struct {
	Total int           `json:"total"`
	Items []productJSON `json:"items"`
}

type productJSON struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Category    string              `json:"category"`
	Price       decimal.NullDecimal `json:"price"`
}

func (p productJSON) product(cdn string) store.Product {
	return store.Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       cdn + p.Image,
		Category:    store.Category(p.Category),
		Price:       p.Price,
	}
}

type orderJSON struct {
	Payment string      `json:"payment"`
	Email   string      `json:"email"`
	Phone   string      `json:"phone"`
	Address string      `json:"address"`
	Total   json.Number `json:"total"`
	Items   []string    `json:"items"`
}

func newOrderJSON(req store.OrderRequest) orderJSON {
	items := req.Items
	if items == nil {
		items = []string{}
	}
	return orderJSON{
		Payment: string(req.Payment),
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Total:   json.Number(req.Total.String()),
		Items:   items,
	}
}

type orderResultJSON struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}

type errorJSON struct {
	Error string `json:"error"`
}
