// Package services contains domain services that coordinate business logic
// spanning multiple aggregates.
//
// Domain services are used when an operation does not naturally belong to a
// single entity or value object. OrderDispatcher is the prime example: it
// weighs an order against a set of candidate shoppers and picks the one the
// offer should go to, without mutating either side.
package services
