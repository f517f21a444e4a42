package queries

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

const maxHistoryLimit = 200

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves a shopper's delivered orders, newest first.
type GetOrderHistoryQuery struct {
	shopperID kernel.UUID
	limit     int
	guard     guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a history query capped at limit entries.
func NewGetOrderHistoryQuery(shopperID kernel.UUID, limit int) (GetOrderHistoryQuery, error) {
	if err := shopperID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	if limit < 1 || limit > maxHistoryLimit {
		return GetOrderHistoryQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxHistoryLimit)
	}

	return GetOrderHistoryQuery{
		shopperID: shopperID,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// ShopperID returns the shopper whose history is requested.
func (q GetOrderHistoryQuery) ShopperID() kernel.UUID {
	return q.shopperID
}

// Limit returns the maximum number of entries to return.
func (q GetOrderHistoryQuery) Limit() int {
	return q.limit
}
