package commands

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand proposes a plain lifecycle transition for an
// order: arriving at the shop, starting to shop, final shopping, out for
// delivery, delivered. Revision moves and cancellation have their own
// commands.
type UpdateOrderStatusCommand struct {
	orderID kernel.UUID
	target  order.Status
	actor   string
	note    string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command proposing a status transition.
// The target must be a known status; whether the edge is legal is decided by
// the aggregate against its current state.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	actor, note string,
) (UpdateOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), target.Validate()); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderID: orderID,
		target:  target,
		actor:   actor,
		note:    note,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the proposed status.
func (c UpdateOrderStatusCommand) Target() order.Status {
	return c.target
}

// Actor returns who proposes the transition.
func (c UpdateOrderStatusCommand) Actor() string {
	return c.actor
}

// Note returns the optional timeline note.
func (c UpdateOrderStatusCommand) Note() string {
	return c.note
}
