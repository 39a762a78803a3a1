// Package topic provides hierarchical topic names and wildcard matching for
// the storefront event bus.
//
// # Topic Format
//
// Topics use dot-notation to create hierarchical namespaces:
//
//	catalog.changed
//	basket.changed
//	order.email.change
//	contacts.phone.change
//
// # Wildcards
//
// Two wildcard patterns are supported:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// Examples:
//
//	order.*.change        matches order.payment.change, order.address.change
//	*.changed             matches catalog.changed, basket.changed
//	order.**              matches order.ready, order.email.change
//	**                    matches everything
package topic
