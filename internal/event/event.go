package event

import (
	"time"

	"github.com/dshills/storefront/internal/event/topic"
)

// Event is a named notification with an optional payload.
// Events are immutable once emitted.
type Event struct {
	// Topic is the event name (e.g. "basket.changed").
	Topic topic.Topic

	// Payload is the event-specific data; may be nil.
	Payload any

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was emitted.
	Timestamp time.Time

	// Depth is the number of enclosing emissions that were being
	// dispatched when this event was emitted. Top-level emissions have depth 0.
	Depth int
}
