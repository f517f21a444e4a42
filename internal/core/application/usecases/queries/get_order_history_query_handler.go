package queries

import (
	"context"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler retrieves a shopper's completed deliveries.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query. Returns delivered orders newest first, capped
// at the query's limit.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]wire.OrderSnapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSnapshotColumns+`
		FROM orders
		WHERE shopper_id = ?
		  AND status = ?
		ORDER BY updated_at DESC
		LIMIT ?
	`, query.ShopperID().Bytes(), order.Delivered, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSnapshots(rows)
}
