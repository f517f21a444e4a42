package queries

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves the working set of a shopper: every order
// assigned to them that has not yet been delivered or cancelled. The shopper
// app renders this list and the reconciliation poll serves from it.
//
// Example:
//
//	query, err := NewGetActiveOrdersQuery(shopperID)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active orders: %w", err)
//	}
type GetActiveOrdersQuery struct {
	shopperID kernel.UUID
	guard     guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for a shopper's active orders.
func NewGetActiveOrdersQuery(shopperID kernel.UUID) (GetActiveOrdersQuery, error) {
	if err := shopperID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	return GetActiveOrdersQuery{
		shopperID: shopperID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// ShopperID returns the shopper whose active orders are requested.
func (q GetActiveOrdersQuery) ShopperID() kernel.UUID {
	return q.shopperID
}
