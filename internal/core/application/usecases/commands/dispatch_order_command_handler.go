package commands

import (
	"context"
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/clock"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/shopper"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/services"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/ports"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"
)

var (
	// ErrNoOrderFound is returned when no order is waiting for a shopper.
	ErrNoOrderFound = errors.New("no order found")
	// ErrNoShoppersAvailable is returned when no shopper can take the offer.
	ErrNoShoppersAvailable = errors.New("no shoppers available")
)

// DispatchOrderCommandHandler orchestrates the offer process: it walks the
// pending orders oldest first, selects the nearest eligible shopper for each,
// and pushes a new_order event to that shopper's channel. A shopper receives
// at most one offer per round, so two pending orders go to two different
// shoppers. Orders stay pending until a shopper accepts, so the handler
// mutates nothing; later rounds simply re-offer what is still pending.
type DispatchOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
}

// NewDispatchOrderCommandHandler creates a handler for dispatch rounds.
func NewDispatchOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle processes one dispatch round.
// Returns ErrNoOrderFound when nothing is pending and ErrNoShoppersAvailable
// when no shopper is online with free capacity.
func (h DispatchOrderCommandHandler) Handle(ctx context.Context, command DispatchOrderCommand) error {
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

	pendings, err := uow.OrderRepository().GetAllPending(ctx)
	if err != nil {
		return err
	}
	if len(pendings) == 0 {
		return ErrNoOrderFound
	}

	shoppers, err := uow.ShopperRepository().GetAllOnline(ctx)
	if err != nil {
		return err
	}
	if len(shoppers) == 0 {
		return ErrNoShoppersAvailable
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	dispatcher := services.NewOrderDispatcher()
	candidates := shoppers
	offered := 0

	for _, pending := range pendings {
		selected, dispatchErr := dispatcher.Dispatch(pending, command.ShopPosition(), candidates)
		if errors.Is(dispatchErr, services.ErrShopperNotFound) {
			// Nobody left with free capacity this round.
			break
		}
		if dispatchErr != nil {
			return dispatchErr
		}

		snapshot := wire.SnapshotOrder(pending)
		event, eventErr := wire.NewEvent(wire.EventNewOrder, snapshot.ID, h.clock.Now(), map[string]any{
			"order": snapshot,
		})
		if eventErr != nil {
			return eventErr
		}

		h.publisher.Publish(ctx, selected.ID(), event)
		offered++

		// One offer per shopper per round.
		remaining := make([]*shopper.Shopper, 0, len(candidates))
		for _, s := range candidates {
			if s != selected {
				remaining = append(remaining, s)
			}
		}
		candidates = remaining
	}

	if offered == 0 {
		return ErrNoShoppersAvailable
	}
	return nil
}
