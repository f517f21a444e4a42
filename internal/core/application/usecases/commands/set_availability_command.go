package commands

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

var ErrSetAvailabilityCommandIsNotConstructed = errors.New(
	"SetAvailabilityCommand must be created via NewSetAvailabilityCommand constructor",
)

// SetAvailabilityCommand changes a shopper's availability. Explicit toggles
// come from the shopper tapping the switch and may clear an admin
// force-offline; implicit ones come from channel attach/detach and must not.
type SetAvailabilityCommand struct {
	shopperID kernel.UUID
	isOnline  bool
	explicit  bool

	guard guard.ConstructorGuard
}

// NewSetAvailabilityCommand creates an availability change command.
func NewSetAvailabilityCommand(
	shopperID kernel.UUID,
	isOnline bool,
	explicit bool,
) (SetAvailabilityCommand, error) {
	if err := shopperID.Validate(); err != nil {
		return SetAvailabilityCommand{}, err
	}

	return SetAvailabilityCommand{
		shopperID: shopperID,
		isOnline:  isOnline,
		explicit:  explicit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAvailabilityCommandIsNotConstructed)
}

// ShopperID returns the shopper changing availability.
func (c SetAvailabilityCommand) ShopperID() kernel.UUID {
	return c.shopperID
}

// IsOnline returns the requested availability value.
func (c SetAvailabilityCommand) IsOnline() bool {
	return c.isOnline
}

// Explicit reports whether the shopper asked for this change themselves.
func (c SetAvailabilityCommand) Explicit() bool {
	return c.explicit
}
