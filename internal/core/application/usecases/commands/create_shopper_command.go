package commands

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

var ErrCreateShopperCommandIsNotConstructed = errors.New(
	"CreateShopperCommand must be created via NewCreateShopperCommand constructor",
)

// CreateShopperCommand registers a new shopper. Shoppers start offline and
// go online by opening their event channel or toggling availability.
type CreateShopperCommand struct {
	shopperID kernel.UUID
	name      string
	phone     string
	guard     guard.ConstructorGuard
}

// NewCreateShopperCommand creates a validated shopper registration command.
func NewCreateShopperCommand(shopperID kernel.UUID, name, phone string) (CreateShopperCommand, error) {
	if err := shopperID.Validate(); err != nil {
		return CreateShopperCommand{}, err
	}
	if name == "" {
		return CreateShopperCommand{}, errs.NewValueIsRequiredError("name")
	}

	return CreateShopperCommand{
		shopperID: shopperID,
		name:      name,
		phone:     phone,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShopperCommand) Validate() error {
	return c.guard.Validate(ErrCreateShopperCommandIsNotConstructed)
}

// ShopperID returns the identifier for the new shopper.
func (c CreateShopperCommand) ShopperID() kernel.UUID {
	return c.shopperID
}

// Name returns the shopper's display name.
func (c CreateShopperCommand) Name() string {
	return c.name
}

// Phone returns the shopper's contact number, possibly empty.
func (c CreateShopperCommand) Phone() string {
	return c.phone
}
