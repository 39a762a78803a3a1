package store

import (
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Category is the product category label.
type Category string

// Known categories.
const (
	CategorySoftSkill  Category = "софт-скил"
	CategoryHardSkill  Category = "хард-скил"
	CategoryButton     Category = "кнопка"
	CategoryAdditional Category = "дополнительное"
	CategoryOther      Category = "другое"
)

// Categories lists every known category.
var Categories = []Category{
	CategorySoftSkill,
	CategoryHardSkill,
	CategoryButton,
	CategoryAdditional,
	CategoryOther,
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	return slices.Contains(Categories, c)
}

// Payment is the order payment method.
type Payment string

// Payment methods. The zero value means "not chosen".
const (
	PaymentCash Payment = "cash"
	PaymentCard Payment = "card"
)

// ParsePayment converts a form value into a Payment.
// The empty string is accepted and clears the choice.
func ParsePayment(s string) (Payment, error) {
	switch p := Payment(s); p {
	case "", PaymentCash, PaymentCard:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPayment, s)
	}
}

// OrderField names a user-editable order field.
type OrderField string

// Order fields, in validation order.
const (
	FieldEmail   OrderField = "email"
	FieldPhone   OrderField = "phone"
	FieldAddress OrderField = "address"
	FieldPayment OrderField = "payment"
)

// OrderFields lists every editable field.
var OrderFields = []OrderField{FieldEmail, FieldPhone, FieldAddress, FieldPayment}

// Field groups for the two checkout forms.
var (
	InfoFields     = []OrderField{FieldPayment, FieldAddress}
	ContactsFields = []OrderField{FieldEmail, FieldPhone}
)

// ParseOrderField converts a form field name into an OrderField.
func ParseOrderField(s string) (OrderField, error) {
	f := OrderField(s)
	if !slices.Contains(OrderFields, f) {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

// FieldChange is the payload of a form field intent.
type FieldChange struct {
	Field string
	Value string
}

// Product is a catalog item.
type Product struct {
	ID          string
	Title       string
	Description string
	Image       string
	Category    Category
	// Price is invalid for priceless products.
	Price decimal.NullDecimal
	// InBasket is maintained by the basket operations.
	InBasket bool
}

// Entry returns the basket entry for p.
func (p Product) Entry() BasketEntry {
	return BasketEntry{ID: p.ID, Title: p.Title, Price: p.Price}
}

// BasketEntry is a product placed in the basket.
type BasketEntry struct {
	ID    string
	Title string
	Price decimal.NullDecimal
}

// Sum returns the exact total of entries. Priceless entries count as zero.
func Sum(entries []BasketEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Price.Valid {
			total = total.Add(e.Price.Decimal)
		}
	}
	return total
}

// Order is the in-progress order.
type Order struct {
	Payment Payment
	Email   string
	Phone   string
	Address string
	// Items and Total are a snapshot of the basket taken by
	// SnapshotBasketIntoOrder.
	Items []string
	Total decimal.Decimal
}

// Field returns the current value of f.
func (o Order) Field(f OrderField) string {
	switch f {
	case FieldEmail:
		return o.Email
	case FieldPhone:
		return o.Phone
	case FieldAddress:
		return o.Address
	case FieldPayment:
		return string(o.Payment)
	default:
		return ""
	}
}

func (o Order) clone() Order {
	o.Items = slices.Clone(o.Items)
	return o
}

// ValidationErrors maps each invalid field to a message.
// A field without a key is valid.
type ValidationErrors map[OrderField]string

// Valid reports whether none of fields has an error.
// With no arguments it reports whether the whole map is empty.
func (v ValidationErrors) Valid(fields ...OrderField) bool {
	if len(fields) == 0 {
		return len(v) == 0
	}
	for _, f := range fields {
		if _, bad := v[f]; bad {
			return false
		}
	}
	return true
}

// Messages returns the messages for fields in the given order, skipping
// valid ones.
func (v ValidationErrors) Messages(fields ...OrderField) []string {
	var out []string
	for _, f := range fields {
		if msg, bad := v[f]; bad {
			out = append(out, msg)
		}
	}
	return out
}

func (v ValidationErrors) clone() ValidationErrors {
	if v == nil {
		return nil
	}
	return maps.Clone(v)
}

// OrderRequest is the order as sent to the remote API.
type OrderRequest struct {
	Payment Payment
	Email   string
	Phone   string
	Address string
	Total   decimal.Decimal
	Items   []string
}

// OrderResult is the remote API's confirmation.
type OrderResult struct {
	ID    string
	Total decimal.Decimal
}

// SubmitFailure is the payload of order.failed.
type SubmitFailure struct {
	Order Order
	Err   error
}
