package commands

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

var ErrResolveRevisionCommandIsNotConstructed = errors.New(
	"ResolveRevisionCommand must be created via NewResolveRevisionCommand constructor",
)

// ResolveRevisionCommand carries the customer's verdict on a pending
// revision. An approval carries the final total the customer agreed to;
// a rejection reverts the order to shopping with the original items.
type ResolveRevisionCommand struct {
	orderID    kernel.UUID
	approved   bool
	finalTotal kernel.Money

	guard guard.ConstructorGuard
}

// NewResolveRevisionCommand creates a command resolving a pending revision.
// finalTotal is only meaningful when approved is true.
func NewResolveRevisionCommand(
	orderID kernel.UUID,
	approved bool,
	finalTotal kernel.Money,
) (ResolveRevisionCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ResolveRevisionCommand{}, err
	}

	return ResolveRevisionCommand{
		orderID:    orderID,
		approved:   approved,
		finalTotal: finalTotal,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveRevisionCommand) Validate() error {
	return c.guard.Validate(ErrResolveRevisionCommandIsNotConstructed)
}

// OrderID returns the order whose revision is being resolved.
func (c ResolveRevisionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Approved reports the customer's verdict.
func (c ResolveRevisionCommand) Approved() bool {
	return c.approved
}

// FinalTotal returns the total the customer agreed to on approval.
func (c ResolveRevisionCommand) FinalTotal() kernel.Money {
	return c.finalTotal
}
