package commands

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand triggers one round of order dispatch: the oldest
// pending order is offered to the nearest eligible shopper. The command
// carries the shop position candidates are ranked against.
type DispatchOrderCommand struct {
	shopPosition kernel.GeoPosition

	guard guard.ConstructorGuard
}

// NewDispatchOrderCommand creates a command to trigger order dispatch.
func NewDispatchOrderCommand(shopPosition kernel.GeoPosition) (DispatchOrderCommand, error) {
	if err := shopPosition.Validate(); err != nil {
		return DispatchOrderCommand{}, err
	}

	return DispatchOrderCommand{
		shopPosition: shopPosition,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

// ShopPosition returns the position shopper proximity is measured against.
func (c DispatchOrderCommand) ShopPosition() kernel.GeoPosition {
	return c.shopPosition
}
