package commands

import (
	"context"

	"github.com/mnpatel007/delhiveryway-shopper/internal/clock"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/ports"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"
)

// BeginRevisionCommandHandler starts the revision sub-protocol for an order.
// On success the order lands in CustomerReviewingRevision with the revision
// attached, and the assigned shopper's channel gets an order_update so every
// device renders the awaiting-review state.
type BeginRevisionCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
}

// NewBeginRevisionCommandHandler creates a handler for revision submission.
func NewBeginRevisionCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
) BeginRevisionCommandHandler {
	return BeginRevisionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle processes the revision submission. A retry while the order is
// already awaiting review is a no-op success.
func (h BeginRevisionCommandHandler) Handle(ctx context.Context, command BeginRevisionCommand) error {
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

	if aggregate.Status() == order.CustomerReviewingRevision {
		return nil
	}

	if err = aggregate.BeginRevision(command.Revision(), h.clock.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if shopperID := aggregate.Shopper(); shopperID != nil {
		snapshot := wire.SnapshotOrder(aggregate)
		event, eventErr := wire.NewEvent(wire.EventOrderUpdate, snapshot.ID, h.clock.Now(), map[string]any{
			"order": snapshot,
		})
		if eventErr == nil {
			h.publisher.Publish(ctx, *shopperID, event)
		}
	}

	return nil
}
