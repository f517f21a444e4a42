package queries

import (
	"context"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetEarningsSummaryQueryHandler aggregates commission earnings over
// delivered orders. Deliveries are bucketed by the timestamp of their last
// update, which for a delivered order is the delivery itself.
type GetEarningsSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetEarningsSummaryQueryHandler creates a handler for earnings queries.
func NewGetEarningsSummaryQueryHandler(db *gorm.DB) GetEarningsSummaryQueryHandler {
	return GetEarningsSummaryQueryHandler{db: db}
}

// Handle executes the query. Day and week boundaries are taken in the
// database's time zone; the week starts on Monday per ISO 8601.
func (h GetEarningsSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetEarningsSummaryQuery,
) (GetEarningsSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}

	var response GetEarningsSummaryQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE updated_at >= date_trunc('day', now())),
			COALESCE(SUM(shopper_commission) FILTER (WHERE updated_at >= date_trunc('day', now())), 0),
			COUNT(*) FILTER (WHERE updated_at >= date_trunc('week', now())),
			COALESCE(SUM(shopper_commission) FILTER (WHERE updated_at >= date_trunc('week', now())), 0),
			COUNT(*),
			COALESCE(SUM(shopper_commission), 0)
		FROM orders
		WHERE shopper_id = ?
		  AND status = ?
	`, query.ShopperID().Bytes(), order.Delivered).Row()

	err := row.Scan(
		&response.Today.Deliveries,
		&response.Today.Earnings,
		&response.Week.Deliveries,
		&response.Week.Earnings,
		&response.Total.Deliveries,
		&response.Total.Earnings,
	)
	if err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}

	return response, nil
}
