package ports

import (
	"context"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"
)

// EventPublisher pushes realtime events to a shopper's event channel.
// Delivery is best-effort: an offline shopper simply misses the push and
// catches up through the reconciliation poll, so implementations absorb
// channel-unavailable conditions instead of surfacing them to commands.
type EventPublisher interface {
	// Publish sends an event to the given shopper's active channel session,
	// if any.
	Publish(ctx context.Context, shopperID kernel.UUID, event wire.Event)

	// ForceAvailability sends an authoritative availability override to the
	// shopper's active channel session.
	ForceAvailability(ctx context.Context, shopperID kernel.UUID, isOnline bool, reason string)

	// DisconnectShopper forcibly closes the shopper's channel session with
	// the admin-offline close reason. Clients seeing that reason must not
	// reconnect automatically.
	DisconnectShopper(ctx context.Context, shopperID kernel.UUID)
}
