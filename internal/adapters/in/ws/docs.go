// Package ws hosts the shopper event channel: one WebSocket session per
// shopper carrying order events and admin availability overrides downstream
// and GPS telemetry upstream.
//
// A shopper has at most one live session. Opening a new session supersedes
// the previous one, so a phone that reconnects after a network blip does not
// leave a stale writer behind. Attaching marks the shopper online and
// detaching marks them offline, unless an admin override is in force.
//
// The hub implements ports.EventPublisher, which is how command handlers
// push events without knowing about WebSockets. Delivery is best effort: a
// shopper without a session simply misses the push and catches up through
// the reconciliation poll.
package ws
