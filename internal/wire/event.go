package wire

import (
	"fmt"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
)

// EventType identifies a kind of realtime event delivered to a shopper over
// the event channel or picked up by the reconciliation poll.
type EventType string

const (
	// EventNewOrder offers a freshly dispatched order to the shopper.
	EventNewOrder EventType = "new_order"
	// EventOrderUpdate carries a general change to an order the shopper works.
	EventOrderUpdate EventType = "order_update"
	// EventRevisionApproved tells the shopper the customer approved a revision.
	EventRevisionApproved EventType = "revision_approved"
	// EventRevisionRejected tells the shopper the customer rejected a revision.
	EventRevisionRejected EventType = "revision_rejected"
	// EventStatusUpdate carries a plain lifecycle status change.
	EventStatusUpdate EventType = "status_update"
	// EventOrderCancelled tells the shopper an order was cancelled.
	EventOrderCancelled EventType = "order_cancelled"
	// EventAdminStatusUpdate carries an admin-forced status override.
	EventAdminStatusUpdate EventType = "admin_status_update"
)

// eventTypes is the closed set of event kinds the channel carries.
func eventTypes() map[EventType]struct{} {
	return map[EventType]struct{}{
		EventNewOrder:          {},
		EventOrderUpdate:       {},
		EventRevisionApproved:  {},
		EventRevisionRejected:  {},
		EventStatusUpdate:      {},
		EventOrderCancelled:    {},
		EventAdminStatusUpdate: {},
	}
}

// Validate checks that the EventType is one of the defined kinds.
func (t EventType) Validate() error {
	if _, ok := eventTypes()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("eventType",
			fmt.Errorf("%q is not a valid event type", string(t)))
	}
	return nil
}

// String returns the wire representation of the event type.
func (t EventType) String() string {
	return string(t)
}

// IsUrgent reports whether the event demands the shopper's immediate
// attention. Urgent events get the aggressive alert treatment: repeated
// audio, sticky notifications, and blocking prompts on handheld devices.
func (t EventType) IsUrgent() bool {
	return t == EventNewOrder || t == EventRevisionApproved
}

// Event is the envelope every channel message travels in. The payload is
// event-type specific and already JSON-shaped by the sender.
type Event struct {
	Type       EventType      `json:"type"`
	OrderID    string         `json:"orderId"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// NewEvent builds a validated event envelope.
func NewEvent(eventType EventType, orderID string, occurredAt time.Time, payload map[string]any) (Event, error) {
	if err := eventType.Validate(); err != nil {
		return Event{}, err
	}
	if orderID == "" {
		return Event{}, errs.NewValueIsRequiredError("orderId")
	}
	if occurredAt.IsZero() {
		return Event{}, errs.NewValueIsRequiredError("occurredAt")
	}

	return Event{
		Type:       eventType,
		OrderID:    orderID,
		OccurredAt: occurredAt.UTC(),
		Payload:    payload,
	}, nil
}
