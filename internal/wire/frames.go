package wire

import "time"

// Frame types the shopper device sends upstream over the event channel.
const (
	// FrameLocation carries a GPS telemetry sample.
	FrameLocation = "location"
	// FramePing is an application-level heartbeat.
	FramePing = "ping"
)

// CloseReasonAdminOffline is the close reason sent when an admin forces the
// shopper's channel shut. A client seeing this reason must not reconnect
// automatically.
const CloseReasonAdminOffline = "admin_offline"

// Frame kinds the server sends downstream over the event channel.
const (
	// FrameKindEvent wraps an order event for the notification engine.
	FrameKindEvent = "event"
	// FrameKindForceStatus wraps an authoritative availability override.
	FrameKindForceStatus = "force_status"
)

// OutboundFrame is the envelope for server-to-device messages. Exactly one
// of the payload fields is set, selected by Kind.
type OutboundFrame struct {
	Kind        string            `json:"kind"`
	Event       *Event            `json:"event,omitempty"`
	ForceStatus *ForceStatusFrame `json:"forceStatus,omitempty"`
}

// ForceStatusFrame carries an admin availability override. The client applies
// the carried value regardless of the shopper's own preference.
type ForceStatusFrame struct {
	IsOnline bool   `json:"isOnline"`
	Reason   string `json:"reason,omitempty"`
}

// InboundFrame is the envelope for device-to-server messages.
type InboundFrame struct {
	Type     string         `json:"type"`
	Location *LocationFrame `json:"location,omitempty"`
}

// LocationFrame is one GPS telemetry sample from the shopper's device.
// Heading and speed are negative when the device does not know them.
type LocationFrame struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Heading   float64   `json:"heading"`
	Speed     float64   `json:"speed"`
	TakenAt   time.Time `json:"takenAt"`
}
