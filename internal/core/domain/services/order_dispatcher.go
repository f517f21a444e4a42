package services

import (
	"errors"
	"math"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/shopper"
)

// ErrShopperNotFound is returned when no suitable shopper is available for an
// order offer. This occurs when either no shoppers are provided or none of
// the provided shoppers is online with free capacity.
var ErrShopperNotFound = errors.New("shopper not found")

// OrderDispatcher is a domain service responsible for selecting the shopper
// an order offer goes to. Selection is proximity-based: among eligible
// shoppers the one closest to the shop wins.
//
// The dispatcher only selects; it does not assign. An order stays pending
// until the chosen shopper explicitly accepts the offer, so the dispatcher
// must not mutate either aggregate.
//
// Business rules:
//   - The order must be valid and still pending a shopper
//   - Only online shoppers below capacity are eligible
//   - Shoppers that never reported a position rank behind all shoppers
//     with a known position
//   - Ties go to the first shopper in the provided slice
type OrderDispatcher struct{}

// NewOrderDispatcher creates a new OrderDispatcher instance.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch selects the nearest eligible shopper for the order's offer.
//
// Parameters:
//   - ord: The order to offer (must be valid and in PendingShopper status)
//   - shopPosition: The shop the shopper would travel to
//   - shoppers: Candidate shoppers to consider
//
// Returns:
//   - *shopper.Shopper: The shopper the offer should go to
//   - error: ErrShopperNotFound if no eligible shopper exists, or validation errors
func (d OrderDispatcher) Dispatch(
	ord *order.Order,
	shopPosition kernel.GeoPosition,
	shoppers []*shopper.Shopper,
) (*shopper.Shopper, error) {
	if err := ord.Validate(); err != nil {
		return nil, err
	}
	if ord.Status() != order.PendingShopper {
		return nil, order.ErrOrderAlreadyOffered
	}
	if err := shopPosition.Validate(); err != nil {
		return nil, err
	}

	var (
		best         *shopper.Shopper
		bestDistance = math.MaxFloat64
		bestBlind    *shopper.Shopper
	)

	for _, s := range shoppers {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if !s.CanTakeOrder() {
			continue
		}

		pos := s.LastPosition()
		if pos == nil {
			if bestBlind == nil {
				bestBlind = s
			}
			continue
		}

		distance, err := pos.DistanceTo(shopPosition)
		if err != nil {
			return nil, err
		}
		if distance < bestDistance {
			bestDistance = distance
			best = s
		}
	}

	if best == nil {
		best = bestBlind
	}
	if best == nil {
		return nil, ErrShopperNotFound
	}

	return best, nil
}
