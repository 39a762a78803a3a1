package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/model"
)

// Validation messages shown next to the checkout forms.
var fieldMessages = map[OrderField]string{
	FieldEmail:   "Нужно указать email!",
	FieldPhone:   "Нужно указать телефон!",
	FieldAddress: "Нужно указать адрес!",
	FieldPayment: "Нужно указать способ оплаты!",
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger used by the state.
func WithLogger(l *zap.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// State is the storefront's client-side state.
type State struct {
	model.Model
	logger *zap.Logger

	catalog []Product
	basket  []BasketEntry
	preview string
	order   Order
	errors  ValidationErrors

	snapshotTaken bool
	submitting    bool
}

// New creates an empty state that announces changes on events.
func New(events event.Emitter, opts ...Option) *State {
	s := &State{
		Model:  model.New(events),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadCatalog replaces the catalog and emits catalog.changed.
// Basket flags are reset and the basket is emptied, since its entries refer
// to the previous catalog. The preview is kept only if its product survives;
// if its basket flag was cleared, preview.changed follows basket.changed.
func (s *State) LoadCatalog(ctx context.Context, products []Product) error {
	old, hadPreview := s.Preview()

	s.catalog = make([]Product, len(products))
	for i, p := range products {
		p.InBasket = false
		s.catalog[i] = p
	}

	hadBasket := len(s.basket) > 0
	s.basket = nil
	if s.indexOf(s.preview) < 0 {
		s.preview = ""
	}
	previewFlipped := hadPreview && old.InBasket && s.preview != ""

	s.logger.Debug("catalog loaded", zap.Int("products", len(s.catalog)))

	err := s.EmitChanges(ctx, TopicCatalogChanged, s.Catalog())
	if hadBasket {
		err = multierr.Append(err, s.EmitChanges(ctx, TopicBasketChanged, s.Basket()))
	}
	if previewFlipped {
		preview, _ := s.Preview()
		err = multierr.Append(err, s.EmitChanges(ctx, TopicPreviewChanged, preview))
	}
	return err
}

// SelectPreview makes id the previewed product and emits preview.changed.
func (s *State) SelectPreview(ctx context.Context, id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	s.preview = id
	return s.EmitChanges(ctx, TopicPreviewChanged, s.catalog[i])
}

// AddToBasket appends entry to the basket and emits basket.changed.
// Adding the same product twice yields two entries.
func (s *State) AddToBasket(ctx context.Context, entry BasketEntry) error {
	if s.submitting {
		return ErrSubmitInFlight
	}
	if !entry.Price.Valid {
		return &InvalidPriceError{ID: entry.ID}
	}
	i := s.indexOf(entry.ID)
	if i < 0 {
		return &NotFoundError{ID: entry.ID}
	}

	flipped := !s.catalog[i].InBasket
	s.catalog[i].InBasket = true
	s.basket = append(s.basket, entry)

	s.logger.Debug("added to basket", zap.String("product", entry.ID), zap.Int("count", len(s.basket)))

	return s.emitBasket(ctx, flipped && entry.ID == s.preview)
}

// RemoveFromBasket removes every entry for id and emits basket.changed.
// An id that is not in the basket is not an error.
func (s *State) RemoveFromBasket(ctx context.Context, id string) error {
	if s.submitting {
		return ErrSubmitInFlight
	}
	flipped := false
	if i := s.indexOf(id); i >= 0 && s.catalog[i].InBasket {
		s.catalog[i].InBasket = false
		flipped = true
	}
	s.basket = slices.DeleteFunc(s.basket, func(e BasketEntry) bool {
		return e.ID == id
	})

	s.logger.Debug("removed from basket", zap.String("product", id), zap.Int("count", len(s.basket)))

	return s.emitBasket(ctx, flipped && id == s.preview)
}

// ClearBasket empties the basket and emits basket.changed.
func (s *State) ClearBasket(ctx context.Context) error {
	if s.submitting {
		return ErrSubmitInFlight
	}
	return s.emitBasket(ctx, s.clearBasket())
}

// clearBasket resets flags and empties the basket. It reports whether the
// previewed product's flag changed.
func (s *State) clearBasket() bool {
	previewFlipped := false
	for _, e := range s.basket {
		if i := s.indexOf(e.ID); i >= 0 {
			if s.catalog[i].InBasket && e.ID == s.preview {
				previewFlipped = true
			}
			s.catalog[i].InBasket = false
		}
	}
	s.basket = nil
	return previewFlipped
}

func (s *State) emitBasket(ctx context.Context, previewFlipped bool) error {
	basket := s.Basket()
	var preview Product
	if previewFlipped {
		preview, _ = s.Preview()
	}

	err := s.EmitChanges(ctx, TopicBasketChanged, basket)
	if previewFlipped {
		err = multierr.Append(err, s.EmitChanges(ctx, TopicPreviewChanged, preview))
	}
	return err
}

// SetOrderField stores value in field and revalidates the order.
// When the order is complete, order.ready follows errors.changed.
func (s *State) SetOrderField(ctx context.Context, field OrderField, value string) error {
	if s.submitting {
		return ErrSubmitInFlight
	}
	switch field {
	case FieldEmail:
		s.order.Email = value
	case FieldPhone:
		s.order.Phone = value
	case FieldAddress:
		s.order.Address = value
	case FieldPayment:
		p, err := ParsePayment(value)
		if err != nil {
			return err
		}
		s.order.Payment = p
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	valid, err := s.ValidateOrder(ctx)
	if valid {
		err = multierr.Append(err, s.EmitChanges(ctx, TopicOrderReady, s.Order()))
	}
	return err
}

// SnapshotBasketIntoOrder copies the basket ids and total into the order.
// Later basket changes do not affect the order until the next snapshot.
func (s *State) SnapshotBasketIntoOrder() error {
	if s.submitting {
		return ErrSubmitInFlight
	}
	items := make([]string, len(s.basket))
	for i, e := range s.basket {
		items[i] = e.ID
	}
	s.order.Items = items
	s.order.Total = s.Total()
	s.snapshotTaken = true
	return nil
}

// ValidateOrder recomputes the validation errors, emits errors.changed and
// reports whether the order is valid.
func (s *State) ValidateOrder(ctx context.Context) (bool, error) {
	s.errors = validate(s.order)
	return len(s.errors) == 0, s.EmitChanges(ctx, TopicErrorsChanged, s.Errors())
}

func validate(o Order) ValidationErrors {
	errs := make(ValidationErrors)
	for _, f := range OrderFields {
		if o.Field(f) == "" {
			errs[f] = fieldMessages[f]
		}
	}
	return errs
}

// ClearOrder resets the in-progress order. No notification is emitted.
func (s *State) ClearOrder() {
	s.order = Order{}
	s.snapshotTaken = false
}

// ClearErrors forgets the last validation pass. No notification is emitted.
func (s *State) ClearErrors() {
	s.errors = nil
}

// Total returns the exact sum of the basket prices.
func (s *State) Total() decimal.Decimal {
	return Sum(s.basket)
}

// Count returns the number of basket entries.
func (s *State) Count() int {
	return len(s.basket)
}

// Catalog returns a copy of the catalog.
func (s *State) Catalog() []Product {
	return slices.Clone(s.catalog)
}

// Basket returns a copy of the basket in insertion order.
func (s *State) Basket() []BasketEntry {
	return slices.Clone(s.basket)
}

// Order returns a copy of the in-progress order.
func (s *State) Order() Order {
	return s.order.clone()
}

// Errors returns a copy of the last validation result, or nil if the order
// has not been validated since the last reset.
func (s *State) Errors() ValidationErrors {
	return s.errors.clone()
}

// Preview returns the previewed product.
func (s *State) Preview() (Product, bool) {
	return s.Product(s.preview)
}

// Product returns the catalog product with the given id.
func (s *State) Product(id string) (Product, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Product{}, false
	}
	return s.catalog[i], true
}

func (s *State) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.catalog, func(p Product) bool {
		return p.ID == id
	})
}
