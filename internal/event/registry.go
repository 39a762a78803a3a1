package event

import (
	"sync"

	"github.com/dshills/storefront/internal/event/topic"
)

// Registry keeps subscriptions in registration order.
// It is thread-safe for concurrent access.
type Registry struct {
	mu   sync.RWMutex
	subs []*subscription
	byID map[string]*subscription
}

// NewRegistry creates a new subscription registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]*subscription),
	}
}

// Add appends a subscription.
func (r *Registry) Add(sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs = append(r.subs, sub)
	r.byID[sub.ID()] = sub
}

// Remove removes a subscription by ID.
func (r *Registry) Remove(subID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[subID]; !exists {
		return false
	}
	delete(r.byID, subID)

	for i, s := range r.subs {
		if s.ID() == subID {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			break
		}
	}
	return true
}

// Match returns a snapshot of all subscriptions whose selector matches
// eventTopic, in registration order.
func (r *Registry) Match(eventTopic topic.Topic) []*subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*subscription
	for _, sub := range r.subs {
		if sub.Selector().Matches(eventTopic) {
			result = append(result, sub)
		}
	}
	return result
}

// CountActive returns the number of active subscriptions.
func (r *Registry) CountActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, sub := range r.subs {
		if sub.IsActive() {
			count++
		}
	}
	return count
}

// Clear cancels and removes all subscriptions.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.subs {
		sub.Cancel()
	}
	r.subs = nil
	r.byID = make(map[string]*subscription)
}
