package event

import (
	"sync/atomic"
)

// Subscription is a handle to a registered handler.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Selector returns the selector the handler was registered under.
	Selector() Selector

	// Cancel stops delivery. Bus.Unsubscribe also removes it from the
	// registry.
	Cancel()
}

type subscription struct {
	id        string
	selector  Selector
	handler   Handler
	cancelled atomic.Bool
}

func newSubscription(id string, sel Selector, h Handler) *subscription {
	return &subscription{
		id:       id,
		selector: sel,
		handler:  h,
	}
}

func (s *subscription) ID() string {
	return s.id
}

func (s *subscription) Selector() Selector {
	return s.selector
}

func (s *subscription) Handler() Handler {
	return s.handler
}

// IsActive reports whether the subscription still receives events.
func (s *subscription) IsActive() bool {
	return !s.cancelled.Load()
}

func (s *subscription) Cancel() {
	s.cancelled.Store(true)
}
