// Package model provides the base for data that broadcasts changes.
//
// A Model owns no data of its own. Concrete models embed it, mutate their
// state and then call EmitChanges once the mutation is complete, so that
// subscribers always observe a consistent value.
package model

import (
	"context"
	"fmt"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/event/topic"
)

// Model forwards change notifications to an event bus.
type Model struct {
	events event.Emitter
}

// New returns a Model that publishes on events.
// A nil emitter produces a model whose notifications are discarded.
func New(events event.Emitter) Model {
	return Model{events: events}
}

// EmitChanges publishes payload under t.
// Handler failures reported by the bus are returned wrapped with the topic.
func (m Model) EmitChanges(ctx context.Context, t topic.Topic, payload any) error {
	if m.events == nil {
		return nil
	}
	if err := m.events.Emit(ctx, t, payload); err != nil {
		return fmt.Errorf("emit %s: %w", t, err)
	}
	return nil
}
