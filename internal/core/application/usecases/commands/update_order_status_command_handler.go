package commands

import (
	"context"

	"github.com/mnpatel007/delhiveryway-shopper/internal/clock"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/ports"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"
)

// UpdateOrderStatusCommandHandler applies proposed lifecycle transitions.
// All mutation for one order id is serialized through the per-order lock, so
// two devices racing the same transition cannot produce a lost update: the
// first wins, the second sees the already-applied state and returns success
// without appending anything.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle processes the proposed transition. Delivering an order frees one of
// the shopper's concurrent order slots. After commit the new state is pushed
// to the assigned shopper's channel as a status_update event.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, command UpdateOrderStatusCommand) error {
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

	// Retry of an already-applied transition: success, nothing to change.
	if aggregate.IsAppliedRetry(command.Target()) {
		return nil
	}

	if err = aggregate.TransitionTo(command.Target(), command.Actor(), command.Note(), h.clock.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if command.Target() == order.Delivered {
		if err = h.releaseShopperSlot(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(ctx, aggregate)
	return nil
}

func (h UpdateOrderStatusCommandHandler) releaseShopperSlot(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
) error {
	shopperID := aggregate.Shopper()
	if shopperID == nil {
		return nil
	}

	shopperAggregate, err := uow.ShopperRepository().Get(ctx, *shopperID)
	if err != nil {
		return err
	}
	if err = shopperAggregate.ReleaseOrder(); err != nil {
		return err
	}
	return uow.ShopperRepository().Update(ctx, shopperAggregate)
}

func (h UpdateOrderStatusCommandHandler) notify(ctx context.Context, aggregate *order.Order) {
	shopperID := aggregate.Shopper()
	if shopperID == nil {
		return
	}

	snapshot := wire.SnapshotOrder(aggregate)
	event, err := wire.NewEvent(wire.EventStatusUpdate, snapshot.ID, h.clock.Now(), map[string]any{
		"order": snapshot,
	})
	if err != nil {
		return
	}
	h.publisher.Publish(ctx, *shopperID, event)
}
