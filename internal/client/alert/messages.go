package alert

import (
	"errors"
	"fmt"

	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"
)

// errNoChannel stands in for a channel the device does not have, so the
// fallback logic treats "no notifier" and "notifier failed" the same way.
var errNoChannel = errors.New("channel not available")

func titleFor(eventType wire.EventType) string {
	switch eventType {
	case wire.EventNewOrder:
		return "New order available"
	case wire.EventOrderUpdate:
		return "Order updated"
	case wire.EventRevisionApproved:
		return "Revision approved"
	case wire.EventRevisionRejected:
		return "Revision rejected"
	case wire.EventStatusUpdate:
		return "Order status changed"
	case wire.EventOrderCancelled:
		return "Order cancelled"
	case wire.EventAdminStatusUpdate:
		return "Availability changed by admin"
	default:
		return "Order notification"
	}
}

func bodyFor(event wire.Event) string {
	if number, ok := event.Payload["orderNumber"].(string); ok && number != "" {
		return fmt.Sprintf("%s (%s)", titleFor(event.Type), number)
	}
	if reason, ok := event.Payload["reason"].(string); ok && reason != "" {
		return reason
	}
	return titleFor(event.Type)
}
