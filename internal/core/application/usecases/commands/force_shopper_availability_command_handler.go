package commands

import (
	"context"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/ports"
)

// ForceShopperAvailabilityCommandHandler applies admin availability
// overrides. Forcing offline sets the shopper's force-offline flag (so
// automatic reconnects stay blocked), notifies the device, and tears the
// channel down with the admin-offline close reason. Forcing online clears
// the flag and restores offers.
type ForceShopperAvailabilityCommandHandler struct {
	uowFactory ShopperUoWFactory
	publisher  ports.EventPublisher
}

// NewForceShopperAvailabilityCommandHandler creates a handler for admin
// availability overrides.
func NewForceShopperAvailabilityCommandHandler(
	uowFactory ShopperUoWFactory,
	publisher ports.EventPublisher,
) ForceShopperAvailabilityCommandHandler {
	return ForceShopperAvailabilityCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the override. The force-status frame goes out before the
// disconnect so the device learns why its channel is about to drop.
func (h ForceShopperAvailabilityCommandHandler) Handle(
	ctx context.Context,
	command ForceShopperAvailabilityCommand,
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

	if command.IsOnline() {
		aggregate.Resume()
	} else {
		aggregate.ForceOffline()
	}

	if err = uow.ShopperRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.ForceAvailability(ctx, command.ShopperID(), command.IsOnline(), command.Reason())
	if !command.IsOnline() {
		h.publisher.DisconnectShopper(ctx, command.ShopperID())
	}

	return nil
}
