package ports

import (
	"context"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/shopper"
)

// ShopperRepository defines the persistence contract for shopper aggregates.
type ShopperRepository interface {
	// Add persists a new shopper aggregate to storage.
	Add(ctx context.Context, aggregate *shopper.Shopper) error

	// Update persists changes to an existing shopper aggregate.
	Update(ctx context.Context, aggregate *shopper.Shopper) error

	// Get retrieves a shopper aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shopper.Shopper, error)

	// GetAllOnline retrieves every shopper currently accepting offers.
	// Used by the dispatch job to build the candidate set.
	GetAllOnline(ctx context.Context) ([]*shopper.Shopper, error)
}
