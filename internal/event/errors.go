package event

import (
	"errors"
	"fmt"
)

// Sentinel errors for the event bus.
var (
	// ErrInvalidTopic is returned when an emitted topic is empty, malformed
	// or contains wildcards.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrInvalidSelector is returned when a selector cannot match anything.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrInvalidSubscription is returned when a subscription is invalid.
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrSubscriptionNotFound is returned when trying to unsubscribe a non-existent subscription.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrHandlerPanic is returned when a handler panics.
	ErrHandlerPanic = errors.New("handler panicked")

	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrPayloadType is returned when a typed handler receives an unexpected payload.
	ErrPayloadType = errors.New("unexpected payload type")
)

// HandlerError wraps an error from a handler with additional context.
type HandlerError struct {
	// SubscriptionID is the ID of the subscription whose handler failed.
	SubscriptionID string

	// Topic is the topic of the event being handled.
	Topic string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return "handler error for subscription " + e.SubscriptionID + " on topic " + e.Topic + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// PanicError wraps a panic value as an error.
type PanicError struct {
	// SubscriptionID is the ID of the subscription whose handler panicked.
	SubscriptionID string

	// Topic is the topic of the event being handled.
	Topic string

	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace at the time of the panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panic for subscription %s on topic %s: %v", e.SubscriptionID, e.Topic, e.Value)
}

// Is allows errors.Is to match PanicError with ErrHandlerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrHandlerPanic
}

// PayloadTypeError reports a payload that does not have the type a typed
// handler expects.
type PayloadTypeError struct {
	Topic string
	Want  string
	Got   string
}

// Error implements the error interface.
func (e *PayloadTypeError) Error() string {
	return fmt.Sprintf("topic %s: payload is %s, want %s", e.Topic, e.Got, e.Want)
}

// Is allows errors.Is to match PayloadTypeError with ErrPayloadType.
func (e *PayloadTypeError) Is(target error) bool {
	return target == ErrPayloadType
}
