package commands

import (
	"context"

	"github.com/mnpatel007/delhiveryway-shopper/internal/clock"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/ports"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"
)

// ForceOrderStatusCommandHandler applies admin status corrections. The push
// goes out as admin_status_update so the shopper's device can tell an admin
// action from its own; an admin racing the shopper on the same order is
// serialized by the per-order lock like any other writer.
type ForceOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
}

// NewForceOrderStatusCommandHandler creates a handler for admin corrections.
func NewForceOrderStatusCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
) ForceOrderStatusCommandHandler {
	return ForceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle processes the admin correction.
func (h ForceOrderStatusCommandHandler) Handle(ctx context.Context, command ForceOrderStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	unlock := lockOrder(command.OrderID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if aggregate.IsAppliedRetry(command.Target()) {
		return nil
	}

	if err = aggregate.TransitionTo(command.Target(), order.ActorAdmin, command.Note(), h.clock.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if command.Target() == order.Delivered {
		if shopperID := aggregate.Shopper(); shopperID != nil {
			shopperAggregate, getErr := uow.ShopperRepository().Get(ctx, *shopperID)
			if getErr != nil {
				return getErr
			}
			if err = shopperAggregate.ReleaseOrder(); err != nil {
				return err
			}
			if err = uow.ShopperRepository().Update(ctx, shopperAggregate); err != nil {
				return err
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if shopperID := aggregate.Shopper(); shopperID != nil {
		snapshot := wire.SnapshotOrder(aggregate)
		event, eventErr := wire.NewEvent(wire.EventAdminStatusUpdate, snapshot.ID, h.clock.Now(), map[string]any{
			"order": snapshot,
			"note":  command.Note(),
		})
		if eventErr == nil {
			h.publisher.Publish(ctx, *shopperID, event)
		}
	}

	return nil
}
