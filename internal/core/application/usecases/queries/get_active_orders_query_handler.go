package queries

import (
	"context"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"

	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves a shopper's active orders from the
// database as wire snapshots, ready to serve over HTTP or push over the
// channel.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Returns the shopper's non-terminal orders,
// oldest first, so the app renders them in the order they were taken.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]wire.OrderSnapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSnapshotColumns+`
		FROM orders
		WHERE shopper_id = ?
		  AND status NOT IN (?, ?)
		ORDER BY created_at
	`, query.ShopperID().Bytes(), order.Delivered, order.Cancelled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSnapshots(rows)
}
