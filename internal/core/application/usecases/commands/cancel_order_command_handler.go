package commands

import (
	"context"

	"github.com/mnpatel007/delhiveryway-shopper/internal/clock"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/ports"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"
)

// CancelOrderCommandHandler ends an order early, frees the assigned
// shopper's slot, and pushes an order_cancelled event to the shopper.
// A retry against an already cancelled order is a no-op success.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle processes the cancellation.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
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

	if aggregate.Status() == order.Cancelled {
		return nil
	}

	if err = aggregate.Cancel(command.Reason(), command.Actor(), h.clock.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

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

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(ctx, aggregate, command.Reason())
	return nil
}

func (h CancelOrderCommandHandler) notify(ctx context.Context, aggregate *order.Order, reason string) {
	shopperID := aggregate.Shopper()
	if shopperID == nil {
		return
	}

	snapshot := wire.SnapshotOrder(aggregate)
	event, err := wire.NewEvent(wire.EventOrderCancelled, snapshot.ID, h.clock.Now(), map[string]any{
		"order":  snapshot,
		"reason": reason,
	})
	if err != nil {
		return
	}
	h.publisher.Publish(ctx, *shopperID, event)
}
