package commands

import (
	"context"
)

// UpdateShopperLocationCommandHandler records GPS telemetry. The aggregate
// applies last-write-wins by capture time, so out-of-order samples from a
// flaky uplink degrade to no-ops instead of corrupting the shopper's track.
type UpdateShopperLocationCommandHandler struct {
	uowFactory ShopperUoWFactory
}

// NewUpdateShopperLocationCommandHandler creates a handler for location telemetry.
func NewUpdateShopperLocationCommandHandler(uowFactory ShopperUoWFactory) UpdateShopperLocationCommandHandler {
	return UpdateShopperLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one telemetry sample. Stale samples commit nothing.
func (h UpdateShopperLocationCommandHandler) Handle(
	ctx context.Context,
	command UpdateShopperLocationCommand,
) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShopperRepository().Get(ctx, command.ShopperID())
	if err != nil {
		return err
	}

	applied, err := aggregate.UpdatePosition(command.Position())
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}

	if err = uow.ShopperRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
