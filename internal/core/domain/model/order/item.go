package order

import (
	"errors"
	"fmt"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created via
// NewLineItem.
var ErrLineItemIsNotConstructed = errors.New(
	"LineItem must be created via NewLineItem constructor")

// LineItem is one ordered product: what to buy, how many, and at what unit
// price. Line items are immutable; availability changes are expressed through
// the revision sub-protocol, never by editing the original item.
type LineItem struct {
	id       kernel.UUID
	name     string
	quantity int
	price    kernel.Money
	guard    guard.ConstructorGuard
}

// NewLineItem creates a validated line item. Quantity must be at least 1 and
// the unit price strictly positive.
func NewLineItem(id kernel.UUID, name string, quantity int, price kernel.Money) (LineItem, error) {
	if err := id.Validate(); err != nil {
		return LineItem{}, err
	}
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("name")
	}
	if quantity < 1 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if !price.IsPositive() {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is not a positive amount", price))
	}

	return LineItem{
		id:       id,
		name:     name,
		quantity: quantity,
		price:    price,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the item was created via NewLineItem.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// ID returns the line item identifier.
func (i LineItem) ID() kernel.UUID {
	return i.id
}

// Name returns the product name.
func (i LineItem) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// Price returns the unit price.
func (i LineItem) Price() kernel.Money {
	return i.price
}

// Subtotal returns quantity times unit price.
func (i LineItem) Subtotal() kernel.Money {
	return i.price.Multiply(i.quantity)
}
