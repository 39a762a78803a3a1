package store

import (
	"errors"
	"fmt"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when an operation references an unknown product.
	ErrNotFound = errors.New("product not found")

	// ErrInvalidPrice is returned when a priceless product is added to the basket.
	ErrInvalidPrice = errors.New("product has no price")

	// ErrUnknownField is returned for an order field name outside the known set.
	ErrUnknownField = errors.New("unknown order field")

	// ErrUnknownPayment is returned for a payment method outside the known set.
	ErrUnknownPayment = errors.New("unknown payment method")

	// ErrCheckoutNotReady is returned by BeginSubmit when the order cannot be sent.
	ErrCheckoutNotReady = errors.New("checkout not ready")

	// ErrSubmitInFlight is returned by BeginSubmit and by basket and order
	// mutators while a submission is pending.
	ErrSubmitInFlight = errors.New("order submission already in flight")

	// ErrNoSubmitInFlight is returned when completing a submission that was never begun.
	ErrNoSubmitInFlight = errors.New("no order submission in flight")
)

// NotFoundError reports an unknown product id.
type NotFoundError struct {
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %q not found", e.ID)
}

// Is allows errors.Is to match NotFoundError with ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidPriceError reports an attempt to basket a priceless product.
type InvalidPriceError struct {
	ID string
}

// Error implements the error interface.
func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("product %q has no price", e.ID)
}

// Is allows errors.Is to match InvalidPriceError with ErrInvalidPrice.
func (e *InvalidPriceError) Is(target error) bool {
	return target == ErrInvalidPrice
}
