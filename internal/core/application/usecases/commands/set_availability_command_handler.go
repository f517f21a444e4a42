package commands

import (
	"context"
)

// SetAvailabilityCommandHandler applies availability changes with the
// one-way trust rule: an explicit toggle is a fresh preference and may
// clear an admin force-offline, while an implicit change (a channel
// attaching after an automatic reconnect) never undoes one. An implicit
// online request against a force-disconnected shopper is dropped silently;
// the client learns the truth from the next reconciliation poll.
type SetAvailabilityCommandHandler struct {
	uowFactory ShopperUoWFactory
}

// NewSetAvailabilityCommandHandler creates a handler for availability changes.
func NewSetAvailabilityCommandHandler(uowFactory ShopperUoWFactory) SetAvailabilityCommandHandler {
	return SetAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the availability change.
func (h SetAvailabilityCommandHandler) Handle(ctx context.Context, command SetAvailabilityCommand) error {
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

	switch {
	case !command.IsOnline():
		aggregate.GoOffline()
	case command.Explicit():
		aggregate.Resume()
	default:
		if goErr := aggregate.GoOnline(); goErr != nil {
			// Auto-reconnect against an admin disconnect: stay offline.
			return nil
		}
	}

	if err = uow.ShopperRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
