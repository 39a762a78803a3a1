package app

import (
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/storefront/internal/event"
	"github.com/dshills/storefront/internal/store"
)

// subscriptionManager manages event bus subscriptions for the application.
type subscriptionManager struct {
	mu            sync.Mutex
	subscriptions []event.Subscription
	app           *Application
}

// newSubscriptionManager creates a new subscription manager.
func newSubscriptionManager(app *Application) *subscriptionManager {
	return &subscriptionManager{
		subscriptions: make([]event.Subscription, 0),
		app:           app,
	}
}

// setupSubscriptions registers all event subscriptions.
func (sm *subscriptionManager) setupSubscriptions() error {
	// View intents -> store operations
	if err := sm.subscribeIntents(); err != nil {
		return err
	}

	// Store notifications -> view props
	if err := sm.subscribeNotifications(); err != nil {
		return err
	}

	// Store notifications -> metrics
	if sm.app.metrics != nil {
		subs, err := sm.app.metrics.Subscribe(sm.app.bus)
		for _, sub := range subs {
			sm.addSubscription(sub)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

type binding struct {
	sel event.Selector
	h   event.Handler
}

// subscribeIntents routes view intents to store operations.
func (sm *subscriptionManager) subscribeIntents() error {
	app := sm.app
	return sm.subscribeAll([]binding{
		{event.Exact(TopicCardSelect), event.Typed(app.handleCardSelect)},
		{event.Exact(TopicCardAdd), event.Typed(app.handleCardAdd)},
		{event.Exact(TopicCardRemove), event.Typed(app.handleCardRemove)},
		{event.Exact(TopicBasketOpen), event.HandlerFunc(app.handleBasketOpen)},
		{event.Exact(TopicBasketSubmit), event.HandlerFunc(app.handleBasketSubmit)},
		{event.Pattern(TopicOrderFieldChange), event.HandlerFunc(app.handleFieldChange)},
		{event.Pattern(TopicContactsFieldChange), event.HandlerFunc(app.handleFieldChange)},
		{event.Exact(TopicOrderSubmit), event.HandlerFunc(app.handleOrderSubmit)},
		{event.Exact(TopicContactsSubmit), event.HandlerFunc(app.handleContactsSubmit)},
		{event.Exact(TopicModalOpen), event.Typed(app.handleModalOpen)},
		{event.Exact(TopicModalClose), event.HandlerFunc(app.handleModalClose)},
	})
}

// subscribeNotifications keeps the view props current.
func (sm *subscriptionManager) subscribeNotifications() error {
	app := sm.app
	return sm.subscribeAll([]binding{
		{event.Exact(store.TopicCatalogChanged), event.Typed(app.onCatalogChanged)},
		{event.Exact(store.TopicPreviewChanged), event.Typed(app.onPreviewChanged)},
		{event.Exact(store.TopicBasketChanged), event.Typed(app.onBasketChanged)},
		{event.Exact(store.TopicErrorsChanged), event.Typed(app.onErrorsChanged)},
		{event.Exact(store.TopicOrderReady), event.Typed(app.onOrderReady)},
		{event.Exact(store.TopicOrderSubmitted), event.Typed(app.onOrderSubmitted)},
		{event.Exact(store.TopicOrderFailed), event.Typed(app.onOrderFailed)},
	})
}

func (sm *subscriptionManager) subscribeAll(bindings []binding) error {
	for _, b := range bindings {
		sub, err := sm.app.bus.Subscribe(b.sel, b.h)
		if err != nil {
			return err
		}
		sm.addSubscription(sub)
	}
	return nil
}

// addSubscription adds a subscription to the managed list.
func (sm *subscriptionManager) addSubscription(sub event.Subscription) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.subscriptions = append(sm.subscriptions, sub)
}

// unsubscribeAll removes all managed subscriptions.
func (sm *subscriptionManager) unsubscribeAll() {
	sm.mu.Lock()
	subs := sm.subscriptions
	sm.subscriptions = nil
	sm.mu.Unlock()

	for _, sub := range subs {
		if err := sm.app.bus.Unsubscribe(sub); err != nil {
			sm.app.logger.Debug("unsubscribe failed",
				zap.String("subscription", sub.ID()),
				zap.Stringer("selector", sub.Selector()),
				zap.Error(err))
		}
	}
}

// count returns the number of managed subscriptions.
func (sm *subscriptionManager) count() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.subscriptions)
}
