// Package store holds the storefront's client-side state.
//
// State owns the catalog, the basket, the in-progress order, the previewed
// product and the current validation errors. Every mutation goes through a
// State method, which keeps the basket flags consistent and then announces
// the change on the event bus:
//
//	catalog.changed   []Product
//	preview.changed   Product
//	basket.changed    []BasketEntry
//	errors.changed    ValidationErrors
//	order.ready       Order
//	order.submitted   OrderResult
//	order.failed      SubmitFailure
//
// Accessors return copies; callers hold product ids, never references into
// the state.
//
// # Checkout
//
// The checkout flow moves through the stages
//
//	Browsing -> BasketReviewed -> InfoCollected -> ContactsCollected -> Submitted
//
// Stage is derived from the order contents. SnapshotBasketIntoOrder leaves
// Browsing, the validation predicates guard the next two steps and
// BeginSubmit enters Submitted. CompleteSubmit resets to Browsing;
// FailSubmit returns to ContactsCollected with the order intact. Between
// BeginSubmit and either of them the basket and order are frozen: their
// mutators return ErrSubmitInFlight.
//
// State is not safe for concurrent use. The application serializes calls
// through its event loop.
package store
