package commands

import (
	"context"

	"github.com/mnpatel007/delhiveryway-shopper/internal/clock"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/ports"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"
)

// ResolveRevisionCommandHandler applies the customer's verdict on a pending
// revision and tells the shopper the result. Approval is one of the two
// must-not-miss event classes on the shopper side, so the pushed event type
// matters: revision_approved triggers the aggressive alert treatment,
// revision_rejected the ordinary one.
type ResolveRevisionCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
}

// NewResolveRevisionCommandHandler creates a handler for revision verdicts.
func NewResolveRevisionCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
) ResolveRevisionCommandHandler {
	return ResolveRevisionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle processes the verdict.
func (h ResolveRevisionCommandHandler) Handle(ctx context.Context, command ResolveRevisionCommand) error {
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

	if command.Approved() {
		err = aggregate.ApproveRevision(command.FinalTotal(), h.clock.Now())
	} else {
		err = aggregate.RejectRevision(h.clock.Now())
	}
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(ctx, aggregate, command.Approved())
	return nil
}

func (h ResolveRevisionCommandHandler) notify(ctx context.Context, aggregate *order.Order, approved bool) {
	shopperID := aggregate.Shopper()
	if shopperID == nil {
		return
	}

	eventType := wire.EventRevisionRejected
	if approved {
		eventType = wire.EventRevisionApproved
	}

	snapshot := wire.SnapshotOrder(aggregate)
	event, err := wire.NewEvent(eventType, snapshot.ID, h.clock.Now(), map[string]any{
		"order": snapshot,
	})
	if err != nil {
		return
	}
	h.publisher.Publish(ctx, *shopperID, event)
}
