package commands

import (
	"context"

	"github.com/mnpatel007/delhiveryway-shopper/internal/clock"
)

// AcceptOrderCommandHandler pins an offered order to the accepting shopper.
// The order moves to AcceptedByShopper and one of the shopper's concurrent
// order slots is consumed, atomically.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle processes the acceptance. A retry after a successful acceptance by
// the same shopper is a no-op success; acceptance by anyone else fails with
// an invalid transition.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, command AcceptOrderCommand) error {
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

	if assigned := aggregate.Shopper(); assigned != nil && assigned.IsEqual(command.ShopperID()) {
		return nil
	}

	shopperAggregate, err := uow.ShopperRepository().Get(ctx, command.ShopperID())
	if err != nil {
		return err
	}

	if err = aggregate.Accept(command.ShopperID(), h.clock.Now()); err != nil {
		return err
	}
	if err = shopperAggregate.TakeOrder(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.ShopperRepository().Update(ctx, shopperAggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
