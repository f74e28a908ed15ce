// Package order provides domain entities and business logic for order management
// in the POS system. It implements the Order aggregate root with lifecycle
// management, per-business-date numbering identity, and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, payment
//     state, and lifecycle
//   - Status: The order lifecycle state machine with its transition table
//   - Item / ItemStatus: Line items with an independent, forward-only
//     preparation progression (Pending -> Cooking -> Ready -> Served)
//
// Key business rules:
//   - An order number is assigned exactly once, at creation, and is unique
//     only within its business date; (business date, number) is the true
//     order identity visible to staff
//   - Cancelled is terminal with no outgoing transitions; Delivered allows a
//     single transition back to Open so an order can be reopened when more
//     items are added
//   - The mutation path is deliberately lenient: a transition outside the
//     table is applied but reported, so callers log a warning instead of
//     rejecting the update
//   - Reaching a terminal status stamps closedAt; reaching Prepared promotes
//     all unfinished items to Ready
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
