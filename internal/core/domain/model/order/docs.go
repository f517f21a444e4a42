// Package order provides domain entities and business logic for order
// lifecycle management in the shopper dispatch core. It implements the Order
// aggregate root with status transitions, the revision sub-protocol, and an
// append-only status timeline.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, pricing,
//     assignment, lifecycle status, and the timeline
//   - Status: A state machine that enforces valid order status transitions
//   - Revision and RevisedItem: The shopper's proposed in-shop changes while
//     a revision is pending customer review
//   - TimelineEntry, LineItem, Address, Pricing: supporting value objects
//
// Key business rules:
//   - Status only moves along edges of the transition table; everything else
//     is an invalid transition
//   - The revision sub-protocol runs ShoppingInProgress -> CustomerReviewingRevision
//     and resolves to CustomerApprovedRevision or back to ShoppingInProgress
//   - Cancellation is allowed from every state before OutForDelivery and is terminal
//   - The timeline is append-only with monotonically non-decreasing timestamps
//   - An available revised item must carry a positive quantity and price
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
