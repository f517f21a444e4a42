package queries

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

var ErrGetEarningsSummaryQueryIsNotConstructed = errors.New(
	"GetEarningsSummaryQuery must be created via NewGetEarningsSummaryQuery constructor",
)

// GetEarningsSummaryQuery retrieves a shopper's commission earnings broken
// down into today, the current week, and all time. Only delivered orders
// count towards earnings.
type GetEarningsSummaryQuery struct {
	shopperID kernel.UUID
	guard     guard.ConstructorGuard
}

// NewGetEarningsSummaryQuery creates an earnings summary query.
func NewGetEarningsSummaryQuery(shopperID kernel.UUID) (GetEarningsSummaryQuery, error) {
	if err := shopperID.Validate(); err != nil {
		return GetEarningsSummaryQuery{}, err
	}

	return GetEarningsSummaryQuery{
		shopperID: shopperID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetEarningsSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetEarningsSummaryQueryIsNotConstructed)
}

// ShopperID returns the shopper whose earnings are requested.
func (q GetEarningsSummaryQuery) ShopperID() kernel.UUID {
	return q.shopperID
}

// EarningsBucket holds the delivery count and commission sum for one period.
// Amounts are integer paise.
type EarningsBucket struct {
	Deliveries int64 `json:"deliveries"`
	Earnings   int64 `json:"earnings"`
}

// GetEarningsSummaryQueryResponse is the earnings breakdown for a shopper.
type GetEarningsSummaryQueryResponse struct {
	Today EarningsBucket `json:"today"`
	Week  EarningsBucket `json:"week"`
	Total EarningsBucket `json:"total"`
}
