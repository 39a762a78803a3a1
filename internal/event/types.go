package event

import (
	"context"
	"fmt"
)

// Handler is the interface for event handlers.
type Handler interface {
	// Handle processes an event. The payload is type-erased; use Typed for
	// a checked conversion.
	Handle(ctx context.Context, evt Event) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, evt Event) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Typed adapts a payload-typed function to a Handler.
// A payload of another type yields a *PayloadTypeError.
func Typed[T any](fn func(ctx context.Context, payload T) error) Handler {
	return HandlerFunc(func(ctx context.Context, evt Event) error {
		payload, ok := evt.Payload.(T)
		if !ok {
			var want T
			return &PayloadTypeError{
				Topic: evt.Topic.String(),
				Want:  fmt.Sprintf("%T", want),
				Got:   fmt.Sprintf("%T", evt.Payload),
			}
		}
		return fn(ctx, payload)
	})
}

// Stats contains event bus statistics.
type Stats struct {
	// EventsEmitted is the total number of events dispatched.
	EventsEmitted uint64

	// EventsQueued is the number of events emitted re-entrantly and deferred.
	EventsQueued uint64

	// EventsDropped is the number of queued events discarded on cancellation.
	EventsDropped uint64

	// HandlersExecuted is the total number of handler executions.
	HandlersExecuted uint64

	// HandlerErrors is the number of handlers that returned errors.
	HandlerErrors uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// ActiveSubscribers is the current number of active subscriptions.
	ActiveSubscribers int
}
