package commands

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

var ErrForceShopperAvailabilityCommandIsNotConstructed = errors.New(
	"ForceShopperAvailabilityCommand must be created via NewForceShopperAvailabilityCommand constructor",
)

// ForceShopperAvailabilityCommand is an authoritative availability override
// from an admin. The carried value wins over the shopper's own preference;
// forcing offline also severs the shopper's event channel.
type ForceShopperAvailabilityCommand struct {
	shopperID kernel.UUID
	isOnline  bool
	reason    string

	guard guard.ConstructorGuard
}

// NewForceShopperAvailabilityCommand creates an admin availability override.
func NewForceShopperAvailabilityCommand(
	shopperID kernel.UUID,
	isOnline bool,
	reason string,
) (ForceShopperAvailabilityCommand, error) {
	if err := shopperID.Validate(); err != nil {
		return ForceShopperAvailabilityCommand{}, err
	}

	return ForceShopperAvailabilityCommand{
		shopperID: shopperID,
		isOnline:  isOnline,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ForceShopperAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrForceShopperAvailabilityCommandIsNotConstructed)
}

// ShopperID returns the shopper the override targets.
func (c ForceShopperAvailabilityCommand) ShopperID() kernel.UUID {
	return c.shopperID
}

// IsOnline returns the forced availability value.
func (c ForceShopperAvailabilityCommand) IsOnline() bool {
	return c.isOnline
}

// Reason returns the admin's explanation, surfaced on the shopper's device.
func (c ForceShopperAvailabilityCommand) Reason() string {
	return c.reason
}
