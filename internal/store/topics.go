package store

import "github.com/dshills/storefront/internal/event/topic"

// Notifications emitted by State.
const (
	TopicCatalogChanged topic.Topic = "catalog.changed"
	TopicPreviewChanged topic.Topic = "preview.changed"
	TopicBasketChanged  topic.Topic = "basket.changed"
	TopicErrorsChanged  topic.Topic = "errors.changed"
	TopicOrderReady     topic.Topic = "order.ready"
	TopicOrderSubmitted topic.Topic = "order.submitted"
	TopicOrderFailed    topic.Topic = "order.failed"
)
