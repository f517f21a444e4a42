package commands

import (
	"context"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/shopper"
)

// CreateShopperCommandHandler registers new shoppers.
type CreateShopperCommandHandler struct {
	uowFactory ShopperUoWFactory
}

// NewCreateShopperCommandHandler creates a handler for shopper registration.
func NewCreateShopperCommandHandler(uowFactory ShopperUoWFactory) CreateShopperCommandHandler {
	return CreateShopperCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shopper registration command.
func (h CreateShopperCommandHandler) Handle(ctx context.Context, command CreateShopperCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := shopper.NewShopper(command.ShopperID(), command.Name(), command.Phone())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShopperRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
