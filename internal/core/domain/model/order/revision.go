package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

var (
	// ErrRevisedItemIsNotConstructed is returned when a RevisedItem was not
	// created via NewRevisedItem.
	ErrRevisedItemIsNotConstructed = errors.New(
		"RevisedItem must be created via NewRevisedItem constructor")

	// ErrRevisionIsNotConstructed is returned when a Revision was not created
	// via NewRevision.
	ErrRevisionIsNotConstructed = errors.New(
		"Revision must be created via NewRevision constructor")
)

// RevisedItem is the shopper's in-store verdict on one original line item:
// either available with a (possibly adjusted) quantity and price, or
// unavailable with a reason.
//
// Invariant: an available item must carry quantity >= 1 and a strictly
// positive price. Decrementing an available item to zero quantity is a
// contract violation caught at construction; callers must mark such items
// unavailable instead. Unavailable items carry no quantity or price
// obligation.
type RevisedItem struct {
	itemID      kernel.UUID
	name        string
	quantity    int
	price       kernel.Money
	isAvailable bool
	note        string
	guard       guard.ConstructorGuard
}

// NewRevisedItem creates a validated revised item referencing the original
// line item by id.
func NewRevisedItem(
	itemID kernel.UUID, name string, quantity int, price kernel.Money, isAvailable bool, note string,
) (RevisedItem, error) {
	if err := itemID.Validate(); err != nil {
		return RevisedItem{}, err
	}
	if name == "" {
		return RevisedItem{}, errs.NewValueIsRequiredError("name")
	}
	if isAvailable {
		if quantity < 1 {
			return RevisedItem{}, errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("available item %q has quantity %d; mark it unavailable instead", name, quantity))
		}
		if !price.IsPositive() {
			return RevisedItem{}, errs.NewValueIsInvalidErrorWithCause("price",
				fmt.Errorf("available item %q has non-positive price %s", name, price))
		}
	}

	return RevisedItem{
		itemID:      itemID,
		name:        name,
		quantity:    quantity,
		price:       price,
		isAvailable: isAvailable,
		note:        note,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the item was created via NewRevisedItem.
func (r RevisedItem) Validate() error {
	return r.guard.Validate(ErrRevisedItemIsNotConstructed)
}

// ItemID returns the id of the original line item this verdict refers to.
func (r RevisedItem) ItemID() kernel.UUID {
	return r.itemID
}

// Name returns the product name.
func (r RevisedItem) Name() string {
	return r.name
}

// Quantity returns the revised quantity. Meaningful only when available.
func (r RevisedItem) Quantity() int {
	return r.quantity
}

// Price returns the revised unit price. Meaningful only when available.
func (r RevisedItem) Price() kernel.Money {
	return r.price
}

// IsAvailable reports whether the item can be supplied.
func (r RevisedItem) IsAvailable() bool {
	return r.isAvailable
}

// Note returns the free-text reason for the change, possibly empty.
func (r RevisedItem) Note() string {
	return r.note
}

// Subtotal returns quantity times price for available items and zero otherwise.
func (r RevisedItem) Subtotal() kernel.Money {
	if !r.isAvailable {
		return kernel.Money{}
	}
	return r.price.Multiply(r.quantity)
}

// Revision is the shopper's proposed change set for an order: one verdict
// per affected line item plus an overall note for the customer. The
// proposed total is derived from the available items at construction and
// never recomputed afterwards.
type Revision struct {
	items         []RevisedItem
	note          string
	proposedTotal kernel.Money
	createdAt     time.Time
	guard         guard.ConstructorGuard
}

// NewRevision creates a validated revision from a non-empty set of revised
// items. Each item must itself be properly constructed.
func NewRevision(items []RevisedItem, note string, createdAt time.Time) (Revision, error) {
	if len(items) == 0 {
		return Revision{}, errs.NewValueIsRequiredError("revisedItems")
	}
	if createdAt.IsZero() {
		return Revision{}, errs.NewValueIsRequiredError("createdAt")
	}

	total := kernel.Money{}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return Revision{}, err
		}
		total = total.Add(item.Subtotal())
	}

	copied := make([]RevisedItem, len(items))
	copy(copied, items)

	return Revision{
		items:         copied,
		note:          note,
		proposedTotal: total,
		createdAt:     createdAt.UTC(),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the revision was created via NewRevision.
func (r Revision) Validate() error {
	return r.guard.Validate(ErrRevisionIsNotConstructed)
}

// Items returns a copy of the revised item set.
func (r Revision) Items() []RevisedItem {
	out := make([]RevisedItem, len(r.items))
	copy(out, r.items)
	return out
}

// Note returns the shopper's overall note to the customer.
func (r Revision) Note() string {
	return r.note
}

// ProposedTotal returns the sum of available item subtotals.
func (r Revision) ProposedTotal() kernel.Money {
	return r.proposedTotal
}

// CreatedAt returns when the revision was submitted.
func (r Revision) CreatedAt() time.Time {
	return r.createdAt
}
