// Package shopper provides domain entities and business logic for personal
// shopper management in the dispatch system. It implements the Shopper
// aggregate root with availability tracking, position telemetry, and
// concurrent order capacity.
//
// The package includes:
//   - Shopper: The aggregate root that manages shopper identity, online
//     state, the admin force-offline flag, and the last known GPS position
//
// Key business rules:
//   - Offers are dispatched only to online shoppers below their order capacity
//   - An admin force-disconnect blocks automatic reconnection; only an
//     explicit Resume brings the shopper back online
//   - Position samples apply last-write-wins by capture time
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package shopper
