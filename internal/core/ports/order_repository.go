package ports

import (
	"context"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPending retrieves every order still waiting for a shopper,
	// oldest first. Used by the dispatch job to find orders to offer.
	GetAllPending(ctx context.Context) ([]*order.Order, error)

	// GetActiveByShopper retrieves all non-terminal orders assigned to the
	// given shopper. This is the working set the shopper app renders and the
	// reconciliation poll serves from.
	GetActiveByShopper(ctx context.Context, shopperID kernel.UUID) ([]*order.Order, error)

	// GetDeliveredByShopper retrieves the shopper's completed orders, newest
	// first, capped at limit. Used for order history and earnings.
	GetDeliveredByShopper(ctx context.Context, shopperID kernel.UUID, limit int) ([]*order.Order, error)
}
