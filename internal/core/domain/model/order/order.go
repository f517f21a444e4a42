package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// ErrOrderAlreadyOffered is returned when dispatching an order that already
// left the PendingShopper status.
var ErrOrderAlreadyOffered = errors.New("order is no longer pending a shopper")

// Order is the aggregate root for one delivery order assigned to a personal
// shopper. It owns the order's lifecycle from dispatch through delivery or
// cancellation, including the interactive revision sub-protocol.
//
// Order follows these invariants:
//   - status is always one of the defined lifecycle states and only ever
//     moves along an edge of the transition table
//   - the timeline is append-only with monotonically non-decreasing
//     timestamps and is the only record of status history
//   - every successful mutation appends exactly one timeline entry and
//     bumps the aggregate version
//   - a revision record exists exactly while the revision sub-protocol is
//     in flight
//
// The struct uses private fields; all mutation goes through validated
// methods, and validation always precedes mutation.
type Order struct {
	id          kernel.UUID
	orderNumber string
	items       []LineItem
	pricing     Pricing
	address     Address

	// shopperID is the assigned shopper (nil until the order is accepted)
	shopperID *kernel.UUID

	status   Status
	timeline []TimelineEntry
	revision *Revision

	// version increments on every mutation; the client store uses it for
	// merge-by-id-and-version reconciliation
	version int64

	isConstructed bool
}

// NewOrder creates a freshly dispatched order in PendingShopper status with
// a seeded timeline entry.
//
// Parameters:
//   - id: unique order identifier
//   - orderNumber: human-readable order number, required
//   - items: at least one validated line item
//   - pricing: monetary breakdown from NewPricing
//   - address: delivery destination
//   - at: dispatch instant, recorded in the first timeline entry
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	items []LineItem,
	pricing Pricing,
	address Address,
	at time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if err := errors.Join(pricing.Validate(), address.Validate()); err != nil {
		return nil, err
	}

	entry, err := NewTimelineEntry(PendingShopper, at, "Order offered to shopper", ActorSystem)
	if err != nil {
		return nil, err
	}

	copied := make([]LineItem, len(items))
	copy(copied, items)

	return &Order{
		id:            id,
		orderNumber:   orderNumber,
		items:         copied,
		pricing:       pricing,
		address:       address,
		status:        PendingShopper,
		timeline:      []TimelineEntry{entry},
		version:       1,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence without transition
// validation. The stored status and timeline are trusted to have been
// produced by the aggregate's own methods.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	items []LineItem,
	pricing Pricing,
	address Address,
	shopperID *kernel.UUID,
	status Status,
	timeline []TimelineEntry,
	revision *Revision,
	version int64,
) (*Order, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("version",
			fmt.Errorf("%d is not a positive version", version))
	}

	copiedItems := make([]LineItem, len(items))
	copy(copiedItems, items)
	copiedTimeline := make([]TimelineEntry, len(timeline))
	copy(copiedTimeline, timeline)

	return &Order{
		id:            id,
		orderNumber:   orderNumber,
		items:         copiedItems,
		pricing:       pricing,
		address:       address,
		shopperID:     shopperID,
		status:        status,
		timeline:      copiedTimeline,
		revision:      revision,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Items returns a copy of the ordered line items.
func (o *Order) Items() []LineItem {
	out := make([]LineItem, len(o.items))
	copy(out, o.items)
	return out
}

// Pricing returns the current monetary breakdown.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// Address returns the delivery destination.
func (o *Order) Address() Address {
	return o.address
}

// Shopper returns the assigned shopper's ID, or nil before acceptance.
func (o *Order) Shopper() *kernel.UUID {
	return o.shopperID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Timeline returns a copy of the append-only status history.
func (o *Order) Timeline() []TimelineEntry {
	out := make([]TimelineEntry, len(o.timeline))
	copy(out, o.timeline)
	return out
}

// Revision returns the in-flight revision record, or nil when none is pending.
func (o *Order) Revision() *Revision {
	return o.revision
}

// Version returns the aggregate version, bumped on every mutation.
func (o *Order) Version() int64 {
	return o.version
}

// IsAppliedRetry reports whether a proposed transition matches the order's
// current status. Callers treat such retries as no-op successes rather than
// rejections, so a network retry after an already-applied transition does
// not fail and does not duplicate a timeline entry.
func (o *Order) IsAppliedRetry(target Status) bool {
	return o.status == target
}

// Accept assigns the order to a shopper and moves it to AcceptedByShopper.
// Only legal from PendingShopper.
func (o *Order) Accept(shopperID kernel.UUID, at time.Time) error {
	if err := shopperID.Validate(); err != nil {
		return err
	}
	if err := o.status.ValidateTransition(AcceptedByShopper); err != nil {
		return err
	}

	if err := o.applyStatus(AcceptedByShopper, at, "Order accepted", ActorShopper); err != nil {
		return err
	}
	o.shopperID = &shopperID
	return nil
}

// TransitionTo moves the order along a plain lifecycle edge: arriving at the
// shop, starting shopping, proceeding to final shopping, going out for
// delivery, and delivering. Revision statuses and cancellation have dedicated
// entry points (BeginRevision, ApproveRevision, RejectRevision, Cancel) and
// are rejected here.
//
// Validation precedes mutation: an illegal target leaves the order unchanged
// and returns an InvalidTransitionError.
func (o *Order) TransitionTo(target Status, actor, note string, at time.Time) error {
	switch target {
	case ShopperRevisedOrder, CustomerReviewingRevision:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is entered via BeginRevision", target))
	case CustomerApprovedRevision:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is entered via ApproveRevision", target))
	case Cancelled:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is entered via Cancel", target))
	}

	if err := o.status.ValidateTransition(target); err != nil {
		return err
	}
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	if note == "" {
		note = fmt.Sprintf("Status updated to %s", target.DisplayName())
	}

	return o.applyStatus(target, at, note, actor)
}

// BeginRevision starts the revision sub-protocol. Only legal from
// ShoppingInProgress: the order passes through ShopperRevisedOrder and lands
// in CustomerReviewingRevision with the revision record attached, the
// applicable total updated to the revision's proposed total, and exactly one
// timeline entry appended.
func (o *Order) BeginRevision(revision Revision, at time.Time) error {
	if err := revision.Validate(); err != nil {
		return err
	}
	if o.status != ShoppingInProgress {
		return errs.NewInvalidTransitionError(string(o.status), string(CustomerReviewingRevision))
	}

	note := revision.Note()
	if note == "" {
		note = "Shopper revised the order - awaiting customer review"
	}
	if err := o.applyStatus(CustomerReviewingRevision, at, note, ActorShopper); err != nil {
		return err
	}
	o.revision = &revision
	o.pricing = o.pricing.withTotal(revision.ProposedTotal())
	return nil
}

// ApproveRevision records the customer's approval, merging the final total
// into the monetary breakdown. Only legal from CustomerReviewingRevision.
func (o *Order) ApproveRevision(finalTotal kernel.Money, at time.Time) error {
	if o.status != CustomerReviewingRevision {
		return errs.NewInvalidTransitionError(string(o.status), string(CustomerApprovedRevision))
	}

	err := o.applyStatus(CustomerApprovedRevision, at,
		"Customer approved the revised order - proceeding with final shopping", ActorCustomer)
	if err != nil {
		return err
	}
	o.pricing = o.pricing.withTotal(finalTotal)
	return nil
}

// RejectRevision records the customer's rejection, reverting the order to
// ShoppingInProgress and clearing the pending revision data. Only legal from
// CustomerReviewingRevision.
func (o *Order) RejectRevision(at time.Time) error {
	if o.status != CustomerReviewingRevision {
		return errs.NewInvalidTransitionError(string(o.status), string(ShoppingInProgress))
	}

	err := o.applyStatus(ShoppingInProgress, at,
		"Customer rejected the revision - continue shopping with original items", ActorCustomer)
	if err != nil {
		return err
	}
	o.revision = nil
	o.pricing = o.pricing.withTotal(o.pricing.OriginalTotal())
	return nil
}

// Cancel ends the order early with an operator-supplied reason. Legal from
// every state before OutForDelivery; irreversible once applied.
func (o *Order) Cancel(reason, actor string, at time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	if !o.status.IsCancellable() {
		return errs.NewInvalidTransitionError(string(o.status), string(Cancelled))
	}

	return o.applyStatus(Cancelled, at, reason, actor)
}

// applyStatus appends a timeline entry and commits the status change.
// Timestamps are clamped to the last entry's timestamp so the timeline stays
// monotonically non-decreasing even when callers' clocks disagree.
func (o *Order) applyStatus(target Status, at time.Time, note, actor string) error {
	if len(o.timeline) > 0 {
		if last := o.timeline[len(o.timeline)-1].Timestamp(); at.Before(last) {
			at = last
		}
	}

	entry, err := NewTimelineEntry(target, at, note, actor)
	if err != nil {
		return err
	}

	o.timeline = append(o.timeline, entry)
	o.status = target
	o.version++
	return nil
}
