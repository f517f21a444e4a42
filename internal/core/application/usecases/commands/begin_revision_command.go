package commands

import (
	"errors"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

var ErrBeginRevisionCommandIsNotConstructed = errors.New(
	"BeginRevisionCommand must be created via NewBeginRevisionCommand constructor",
)

// BeginRevisionCommand represents a shopper submitting in-shop changes for
// customer review: per-item availability verdicts, substitutions, and an
// overall note.
type BeginRevisionCommand struct {
	orderID  kernel.UUID
	revision order.Revision

	guard guard.ConstructorGuard
}

// NewBeginRevisionCommand creates a command carrying the shopper's revision.
func NewBeginRevisionCommand(
	orderID kernel.UUID,
	items []order.RevisedItem,
	note string,
	createdAt time.Time,
) (BeginRevisionCommand, error) {
	if err := orderID.Validate(); err != nil {
		return BeginRevisionCommand{}, err
	}

	revision, err := order.NewRevision(items, note, createdAt)
	if err != nil {
		return BeginRevisionCommand{}, err
	}

	return BeginRevisionCommand{
		orderID:  orderID,
		revision: revision,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BeginRevisionCommand) Validate() error {
	return c.guard.Validate(ErrBeginRevisionCommandIsNotConstructed)
}

// OrderID returns the order being revised.
func (c BeginRevisionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Revision returns the validated revision record.
func (c BeginRevisionCommand) Revision() order.Revision {
	return c.revision
}
