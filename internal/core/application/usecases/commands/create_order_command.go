package commands

import (
	"errors"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new order awaiting
// a shopper. The command carries fully validated domain values; invalid
// input never makes it past the constructor.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "DW-1042", items, pricing, address)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	handler := NewCreateOrderCommandHandler(uowFactory, clock)
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	orderID     kernel.UUID
	orderNumber string
	items       []order.LineItem
	pricing     order.Pricing
	address     order.Address

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates the order id, order number, items, pricing, and address.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	orderNumber string,
	items []order.LineItem,
	pricing order.Pricing,
	address order.Address,
) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if orderNumber == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("orderNumber")
	}
	if len(items) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return CreateOrderCommand{}, err
		}
	}
	if err := errors.Join(pricing.Validate(), address.Validate()); err != nil {
		return CreateOrderCommand{}, err
	}

	copied := make([]order.LineItem, len(items))
	copy(copied, items)

	return CreateOrderCommand{
		orderID:     orderID,
		orderNumber: orderNumber,
		items:       copied,
		pricing:     pricing,
		address:     address,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNumber returns the human-readable order number.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// Items returns the ordered line items.
func (c CreateOrderCommand) Items() []order.LineItem {
	return c.items
}

// Pricing returns the monetary breakdown.
func (c CreateOrderCommand) Pricing() order.Pricing {
	return c.pricing
}

// Address returns the delivery destination.
func (c CreateOrderCommand) Address() order.Address {
	return c.address
}
