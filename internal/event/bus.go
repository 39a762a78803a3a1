package event

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dshills/storefront/internal/event/dispatch"
	"github.com/dshills/storefront/internal/event/topic"
)

// Emitter is the publishing half of the bus.
// Models and views depend on this rather than on *Bus.
type Emitter interface {
	Emit(ctx context.Context, t topic.Topic, payload any) error
}

// Subscriber is the subscribing half of the bus.
type Subscriber interface {
	Subscribe(sel Selector, h Handler) (Subscription, error)
	Unsubscribe(sub Subscription) error
}

// Bus is a synchronous publish/subscribe bus.
// The zero value is not usable; construct with NewBus.
type Bus struct {
	registry *Registry
	executor *dispatch.Executor
	config   busConfig
	logger   *zap.Logger

	// mu guards the emission queue and the dispatching flag.
	mu          sync.Mutex
	queue       []Event
	dispatching bool
	depth       int

	eventsEmitted    atomic.Uint64
	eventsQueued     atomic.Uint64
	eventsDropped    atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerErrors    atomic.Uint64
	handlerPanics    atomic.Uint64
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...Option) *Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &Bus{
		registry: NewRegistry(),
		executor: dispatch.NewExecutor(dispatch.WithNow(config.clock.Now)),
		config:   config,
		logger:   config.logger,
	}
}

// Subscribe registers h for every event whose topic matches sel.
// This method is safe to call from within a handler; the new subscription
// only sees events dequeued after it was added.
func (b *Bus) Subscribe(sel Selector, h Handler) (Subscription, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	if !sel.IsValid() {
		return nil, ErrInvalidSelector
	}

	sub := newSubscription(b.config.newID(), sel, h)
	b.registry.Add(sub)

	b.logger.Debug("subscribed",
		zap.String("subscription", sub.ID()),
		zap.Stringer("selector", sel))

	return sub, nil
}

// Unsubscribe removes a subscription. A subscription removed while an event
// is being dispatched does not receive the remainder of that event.
func (b *Bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}

	sub.Cancel()
	if !b.registry.Remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// UnsubscribeAll removes every subscription.
func (b *Bus) UnsubscribeAll() {
	b.registry.Clear()
	b.logger.Debug("all subscriptions removed")
}

// Emit delivers payload to every handler whose selector matches t.
//
// When called while the bus is already dispatching (from a handler, or from
// another goroutine) the event is queued behind the current one and Emit
// returns nil; its failures are reported by the Emit that drains the queue.
// If ctx is cancelled while draining, the remaining queue is dropped and
// ctx.Err() is included in the returned error.
func (b *Bus) Emit(ctx context.Context, t topic.Topic, payload any) error {
	if !t.IsValid() || t.IsWildcard() {
		return ErrInvalidTopic
	}

	b.mu.Lock()
	evt := Event{
		Topic:   t,
		Payload: payload,
		Metadata: Metadata{
			ID:        b.config.newID(),
			Timestamp: b.config.clock.Now(),
			Depth:     b.depth,
		},
	}
	b.queue = append(b.queue, evt)
	if b.dispatching {
		b.mu.Unlock()
		b.eventsQueued.Add(1)
		return nil
	}
	b.dispatching = true
	b.mu.Unlock()

	return b.drain(ctx)
}

// drain delivers queued events in FIFO order until the queue is empty.
func (b *Bus) drain(ctx context.Context) error {
	var errs error
	skipped := false
	for {
		b.mu.Lock()
		if err := ctx.Err(); err != nil && (skipped || len(b.queue) > 0) {
			dropped := len(b.queue)
			b.queue = nil
			b.dispatching = false
			b.depth = 0
			b.mu.Unlock()

			b.eventsDropped.Add(uint64(dropped))
			b.logger.Warn("emission cancelled", zap.Int("dropped", dropped), zap.Error(err))
			return multierr.Append(errs, err)
		}
		if len(b.queue) == 0 {
			b.dispatching = false
			b.depth = 0
			b.mu.Unlock()
			return errs
		}
		evt := b.queue[0]
		b.queue[0] = Event{}
		b.queue = b.queue[1:]
		b.depth = evt.Metadata.Depth + 1
		b.mu.Unlock()

		wasSkipped, err := b.deliver(ctx, evt)
		errs = multierr.Append(errs, err)
		skipped = skipped || wasSkipped
	}
}

// deliver runs every matching handler for a single event. It reports
// whether any handler was skipped because ctx was done.
func (b *Bus) deliver(ctx context.Context, evt Event) (bool, error) {
	b.eventsEmitted.Add(1)

	subs := b.registry.Match(evt.Topic)
	if len(subs) == 0 {
		b.logger.Debug("no subscribers", zap.Stringer("topic", evt.Topic))
		return false, nil
	}

	var errs error
	for _, sub := range subs {
		if !sub.IsActive() {
			continue
		}

		h := sub.Handler()
		result := b.executor.Execute(ctx, func(ctx context.Context) error {
			return h.Handle(ctx, evt)
		})
		if result.Skipped {
			return true, errs
		}
		b.handlersExecuted.Add(1)

		switch {
		case result.Panicked:
			b.handlerPanics.Add(1)
			b.logger.Error("handler panicked",
				zap.String("subscription", sub.ID()),
				zap.Stringer("topic", evt.Topic),
				zap.Duration("took", result.Duration),
				zap.Any("value", result.PanicValue))
			errs = multierr.Append(errs, &PanicError{
				SubscriptionID: sub.ID(),
				Topic:          evt.Topic.String(),
				Value:          result.PanicValue,
				Stack:          string(result.PanicStack),
			})

		case result.Error != nil:
			b.handlerErrors.Add(1)
			b.logger.Warn("handler failed",
				zap.String("subscription", sub.ID()),
				zap.Stringer("topic", evt.Topic),
				zap.Duration("took", result.Duration),
				zap.Error(result.Error))
			errs = multierr.Append(errs, &HandlerError{
				SubscriptionID: sub.ID(),
				Topic:          evt.Topic.String(),
				Err:            result.Error,
			})

		default:
			b.logger.Debug("handler done",
				zap.String("subscription", sub.ID()),
				zap.Stringer("topic", evt.Topic),
				zap.Duration("took", result.Duration))
		}
	}
	return false, errs
}

// Stats returns current bus statistics.
func (b *Bus) Stats() Stats {
	return Stats{
		EventsEmitted:     b.eventsEmitted.Load(),
		EventsQueued:      b.eventsQueued.Load(),
		EventsDropped:     b.eventsDropped.Load(),
		HandlersExecuted:  b.handlersExecuted.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: b.registry.CountActive(),
	}
}
