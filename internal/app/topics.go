package app

import (
	"github.com/dshills/storefront/internal/event/topic"
	"github.com/dshills/storefront/internal/store"
)

// Intents emitted by the views.
const (
	TopicCardSelect     topic.Topic = "card.select"
	TopicCardAdd        topic.Topic = "card.add"
	TopicCardRemove     topic.Topic = "card.remove"
	TopicBasketOpen     topic.Topic = "basket.open"
	TopicBasketSubmit   topic.Topic = "basket.submit"
	TopicOrderSubmit    topic.Topic = "order.submit"
	TopicContactsSubmit topic.Topic = "contacts.submit"
	TopicModalOpen      topic.Topic = "modal.open"
	TopicModalClose     topic.Topic = "modal.close"

	// Field edits arrive as order.<field>.change and contacts.<field>.change.
	TopicOrderFieldChange    topic.Topic = "order.*.change"
	TopicContactsFieldChange topic.Topic = "contacts.*.change"
)

// OrderFieldTopic returns the intent topic for an order form field.
func OrderFieldTopic(f store.OrderField) topic.Topic {
	return topic.Topic("order").Child(string(f)).Child("change")
}

// ContactsFieldTopic returns the intent topic for a contacts form field.
func ContactsFieldTopic(f store.OrderField) topic.Topic {
	return topic.Topic("contacts").Child(string(f)).Child("change")
}
