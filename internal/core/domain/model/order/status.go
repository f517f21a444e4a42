package order

import (
	"fmt"

	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
)

// Status represents the lifecycle state of a shopper order.
// It implements a state machine with a data-driven transition table so the
// legal moves live in exactly one place; UI action sets and command handlers
// derive from it instead of duplicating the rules.
//
// State transitions:
//
//	pending_shopper ──> accepted_by_shopper ──> shopper_at_shop ──> shopping_in_progress
//	                                                                      │        │
//	                                              shopper_revised_order <─┘        │
//	                                                        │                      │
//	                                          customer_reviewing_revision          │
//	                                              │                    │           │
//	                          customer_approved_revision    (rejection)└──────────>│
//	                                              │
//	                                              └──> final_shopping ──> out_for_delivery ──> delivered
//
// cancelled is reachable from every state before out_for_delivery and, like
// delivered, is terminal.
type Status string

const (
	// PendingShopper is the initial status: the order has been offered to a
	// shopper and awaits acceptance.
	PendingShopper Status = "pending_shopper"

	// AcceptedByShopper indicates the shopper has taken the order.
	AcceptedByShopper Status = "accepted_by_shopper"

	// ShopperAtShop indicates the shopper has arrived at the shop.
	ShopperAtShop Status = "shopper_at_shop"

	// ShoppingInProgress indicates the shopper is picking items.
	ShoppingInProgress Status = "shopping_in_progress"

	// ShopperRevisedOrder is the instantaneous state entered when the shopper
	// submits a revision; it immediately hands over to CustomerReviewingRevision.
	ShopperRevisedOrder Status = "shopper_revised_order"

	// CustomerReviewingRevision indicates a revision awaits the customer's decision.
	CustomerReviewingRevision Status = "customer_reviewing_revision"

	// CustomerApprovedRevision indicates the customer accepted the revised order.
	CustomerApprovedRevision Status = "customer_approved_revision"

	// FinalShopping indicates the shopper is completing the (possibly revised) purchase.
	FinalShopping Status = "final_shopping"

	// OutForDelivery indicates the shopper is en route to the customer.
	OutForDelivery Status = "out_for_delivery"

	// Delivered is the successful terminal status.
	Delivered Status = "delivered"

	// Cancelled is the unsuccessful terminal status. Cancellation always
	// carries an operator-supplied reason.
	Cancelled Status = "cancelled"
)

// transitions is the canonical lifecycle table: each status maps to the set
// of statuses it may move to. Cancelled appears as a successor of every
// status before OutForDelivery.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		PendingShopper:            {AcceptedByShopper, Cancelled},
		AcceptedByShopper:         {ShopperAtShop, Cancelled},
		ShopperAtShop:             {ShoppingInProgress, Cancelled},
		ShoppingInProgress:        {FinalShopping, ShopperRevisedOrder, Cancelled},
		ShopperRevisedOrder:       {CustomerReviewingRevision, Cancelled},
		CustomerReviewingRevision: {CustomerApprovedRevision, ShoppingInProgress, Cancelled},
		CustomerApprovedRevision:  {FinalShopping, Cancelled},
		FinalShopping:             {OutForDelivery, Cancelled},
		OutForDelivery:            {Delivered},
		Delivered:                 {},
		Cancelled:                 {},
	}
}

// getDisplayNames returns the human-readable badge labels per status.
func getDisplayNames() map[Status]string {
	return map[Status]string{
		PendingShopper:            "New Order",
		AcceptedByShopper:         "Accepted",
		ShopperAtShop:             "At Shop",
		ShoppingInProgress:        "Shopping",
		ShopperRevisedOrder:       "Revision Sent",
		CustomerReviewingRevision: "Customer Reviewing",
		CustomerApprovedRevision:  "Revision Approved",
		FinalShopping:             "Final Shopping",
		OutForDelivery:            "Out for Delivery",
		Delivered:                 "Delivered",
		Cancelled:                 "Cancelled",
	}
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// DisplayName returns the human-readable label for the status, or the wire
// representation for unknown values.
func (s Status) DisplayName() string {
	if name, ok := getDisplayNames()[s]; ok {
		return name
	}
	return string(s)
}

// Successors returns the statuses this status may legally move to.
// The returned slice is a copy; callers may mutate it freely.
func (s Status) Successors() []Status {
	next := transitions()[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether target is a legal successor of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition checks that target is a legal successor of s, returning
// an InvalidTransitionError otherwise. Both statuses must themselves be valid.
func (s Status) ValidateTransition(target Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError(string(s), string(target))
	}
	return nil
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsCancellable reports whether an order in this status may still be
// cancelled. Orders already out for delivery (or terminal) cannot.
func (s Status) IsCancellable() bool {
	return s.CanTransitionTo(Cancelled)
}
