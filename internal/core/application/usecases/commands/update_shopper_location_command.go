package commands

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

var ErrUpdateShopperLocationCommandIsNotConstructed = errors.New(
	"UpdateShopperLocationCommand must be created via NewUpdateShopperLocationCommand constructor",
)

// UpdateShopperLocationCommand carries one GPS telemetry sample from a
// shopper's device.
type UpdateShopperLocationCommand struct {
	shopperID kernel.UUID
	position  kernel.GeoPosition

	guard guard.ConstructorGuard
}

// NewUpdateShopperLocationCommand creates a location telemetry command.
func NewUpdateShopperLocationCommand(
	shopperID kernel.UUID,
	position kernel.GeoPosition,
) (UpdateShopperLocationCommand, error) {
	if err := errors.Join(shopperID.Validate(), position.Validate()); err != nil {
		return UpdateShopperLocationCommand{}, err
	}

	return UpdateShopperLocationCommand{
		shopperID: shopperID,
		position:  position,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShopperLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShopperLocationCommandIsNotConstructed)
}

// ShopperID returns the reporting shopper.
func (c UpdateShopperLocationCommand) ShopperID() kernel.UUID {
	return c.shopperID
}

// Position returns the reported GPS sample.
func (c UpdateShopperLocationCommand) Position() kernel.GeoPosition {
	return c.position
}
