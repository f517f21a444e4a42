package commands

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a shopper taking an offered order.
type AcceptOrderCommand struct {
	orderID   kernel.UUID
	shopperID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command for a shopper to accept an order.
func NewAcceptOrderCommand(orderID, shopperID kernel.UUID) (AcceptOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), shopperID.Validate()); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID:   orderID,
		shopperID: shopperID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the order being accepted.
func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShopperID returns the accepting shopper.
func (c AcceptOrderCommand) ShopperID() kernel.UUID {
	return c.shopperID
}
