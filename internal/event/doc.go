// Package event provides the storefront event bus.
//
// The bus decouples the state core from the views and the orchestration
// layer. Views emit user-intent events ("card.select", "order.email.change"),
// the orchestrator turns them into store operations, and the store emits
// change notifications ("basket.changed", "errors.changed") that views render.
//
// # Selectors
//
// Every subscription names a Selector, which is one of:
//
//	event.Exact("basket.changed")        - exactly one topic
//	event.Pattern("order.*.change")      - dotted wildcard pattern (* and **)
//	event.MustRegexp(`^contacts\..*\.change$`) - regular expression on the topic name
//
// # Delivery
//
// Emit is synchronous. Matching handlers run in registration order in the
// caller's goroutine. The handler list is snapshotted when the event is
// dequeued, so subscribing during dispatch does not affect the event being
// delivered.
//
// An Emit issued by a handler while the bus is dispatching is queued and
// delivered after the current event's handler list has finished. The nested
// call returns nil immediately; failures from queued events are reported to
// the outermost Emit.
//
// # Failures
//
// A handler that returns an error or panics does not stop the remaining
// handlers. Every failure is logged, wrapped in a HandlerError or PanicError,
// and all failures of one Emit are combined with multierr and returned.
//
// # Usage
//
//	bus := event.NewBus(event.WithLogger(logger))
//
//	sub, err := bus.Subscribe(event.Pattern("order.*.change"),
//	    event.HandlerFunc(func(ctx context.Context, evt event.Event) error {
//	        change := evt.Payload.(FieldChange)
//	        return state.SetOrderField(ctx, change.Field, change.Value)
//	    }))
//
//	err = bus.Emit(ctx, "order.email.change", FieldChange{Field: "email", Value: "a@b.c"})
//
//	bus.Unsubscribe(sub)
//	bus.UnsubscribeAll()
package event
