package commands

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

var ErrForceOrderStatusCommandIsNotConstructed = errors.New(
	"ForceOrderStatusCommand must be created via NewForceOrderStatusCommand constructor",
)

// ForceOrderStatusCommand is an admin correcting an order's lifecycle
// status on the shopper's behalf. The correction still moves along legal
// edges: the transition table binds admins the same as everyone else, only
// the pushed event type differs so the shopper sees who acted.
type ForceOrderStatusCommand struct {
	orderID kernel.UUID
	target  order.Status
	note    string

	guard guard.ConstructorGuard
}

// NewForceOrderStatusCommand creates a command for an admin status override.
func NewForceOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	note string,
) (ForceOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), target.Validate()); err != nil {
		return ForceOrderStatusCommand{}, err
	}

	return ForceOrderStatusCommand{
		orderID: orderID,
		target:  target,
		note:    note,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ForceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrForceOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to correct.
func (c ForceOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the status the admin forces.
func (c ForceOrderStatusCommand) Target() order.Status {
	return c.target
}

// Note returns the admin's explanation, shown on the timeline.
func (c ForceOrderStatusCommand) Note() string {
	return c.note
}
