package ws

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/application/usecases/commands"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/ports"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"
)

var _ ports.EventPublisher = &Hub{}

// Hub owns every live shopper session and implements the outbound event
// publisher port. All session access goes through the hub's lock.
type Hub struct {
	locationHandler     commands.UpdateShopperLocationCommandHandler
	availabilityHandler commands.SetAvailabilityCommandHandler
	logger              *slog.Logger

	mu       sync.RWMutex
	sessions map[kernel.UUID]*session
}

// NewHub creates a hub wired to the command handlers that inbound frames
// and attach/detach transitions feed into.
func NewHub(
	locationHandler commands.UpdateShopperLocationCommandHandler,
	availabilityHandler commands.SetAvailabilityCommandHandler,
	logger *slog.Logger,
) *Hub {
	return &Hub{
		locationHandler:     locationHandler,
		availabilityHandler: availabilityHandler,
		logger:              logger,
		sessions:            make(map[kernel.UUID]*session),
	}
}

// Attach registers a connection as the shopper's live session and services
// it until the connection drops. The previous session, if any, is superseded
// and closed without a reason so the older device may reconnect if it is
// still alive. Blocks until the session ends.
func (h *Hub) Attach(ctx context.Context, shopperID kernel.UUID, conn Conn) error {
	if err := shopperID.Validate(); err != nil {
		return err
	}

	sess := newSession(shopperID, conn)

	h.mu.Lock()
	if prior, ok := h.sessions[shopperID]; ok {
		prior.close("")
	}
	h.sessions[shopperID] = sess
	h.mu.Unlock()

	// Attaching counts as an automatic online signal, not an explicit
	// opt-in: it is refused while an admin override is in force.
	h.setAvailability(ctx, shopperID, true, false)

	go sess.writePump()
	h.readPump(ctx, sess)

	h.detach(ctx, sess)
	return nil
}

// Publish queues an event for the shopper's device. A shopper without a
// live session, or with a backed-up one, misses the push and reconciles by
// polling.
func (h *Hub) Publish(_ context.Context, shopperID kernel.UUID, event wire.Event) {
	h.mu.RLock()
	sess, ok := h.sessions[shopperID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if !sess.send(wire.OutboundFrame{Kind: wire.FrameKindEvent, Event: &event}) {
		h.logger.Warn("event push dropped",
			"shopperId", shopperID.String(), "eventType", event.Type.String())
	}
}

// ForceAvailability pushes an admin availability override to the device.
func (h *Hub) ForceAvailability(_ context.Context, shopperID kernel.UUID, isOnline bool, reason string) {
	h.mu.RLock()
	sess, ok := h.sessions[shopperID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	sess.send(wire.OutboundFrame{
		Kind:        wire.FrameKindForceStatus,
		ForceStatus: &wire.ForceStatusFrame{IsOnline: isOnline, Reason: reason},
	})
}

// DisconnectShopper severs the shopper's session with the admin close
// reason. The client must not reconnect automatically after seeing it.
func (h *Hub) DisconnectShopper(_ context.Context, shopperID kernel.UUID) {
	h.mu.Lock()
	sess, ok := h.sessions[shopperID]
	if ok {
		delete(h.sessions, shopperID)
	}
	h.mu.Unlock()
	if !ok {
		return
	}

	sess.close(wire.CloseReasonAdminOffline)
}

// IsConnected reports whether the shopper currently has a live session.
func (h *Hub) IsConnected(shopperID kernel.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.sessions[shopperID]
	return ok
}

// readPump consumes inbound frames until the connection drops.
func (h *Hub) readPump(ctx context.Context, sess *session) {
	_ = sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame wire.InboundFrame
		if err := sess.conn.ReadJSON(&frame); err != nil {
			sess.close("")
			return
		}
		_ = sess.conn.SetReadDeadline(time.Now().Add(pongWait))

		switch frame.Type {
		case wire.FrameLocation:
			h.handleLocation(ctx, sess.shopperID, frame.Location)
		case wire.FramePing:
			// Deadline already extended above.
		default:
			h.logger.Warn("unknown inbound frame type",
				"shopperId", sess.shopperID.String(), "frameType", frame.Type)
		}
	}
}

// handleLocation feeds one telemetry sample into the location command.
func (h *Hub) handleLocation(ctx context.Context, shopperID kernel.UUID, frame *wire.LocationFrame) {
	if frame == nil {
		return
	}

	position, err := kernel.NewGeoPosition(
		frame.Latitude, frame.Longitude, frame.Heading, frame.Speed, frame.TakenAt)
	if err != nil {
		h.logger.Warn("invalid location frame",
			"shopperId", shopperID.String(), "error", err)
		return
	}

	command, err := commands.NewUpdateShopperLocationCommand(shopperID, position)
	if err != nil {
		return
	}
	if err := h.locationHandler.Handle(ctx, command); err != nil {
		h.logger.Error("location update failed",
			"shopperId", shopperID.String(), "error", err)
	}
}

// detach removes the session from the registry if it is still the current
// one, and marks the shopper offline. A superseding session has already
// replaced the registry entry, and an admin disconnect has already removed
// it; in both cases availability is left alone.
func (h *Hub) detach(ctx context.Context, sess *session) {
	h.mu.Lock()
	current, ok := h.sessions[sess.shopperID]
	if !ok || current != sess {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, sess.shopperID)
	h.mu.Unlock()

	h.setAvailability(ctx, sess.shopperID, false, false)
}

func (h *Hub) setAvailability(ctx context.Context, shopperID kernel.UUID, isOnline, explicit bool) {
	command, err := commands.NewSetAvailabilityCommand(shopperID, isOnline, explicit)
	if err != nil {
		return
	}
	if err := h.availabilityHandler.Handle(ctx, command); err != nil {
		h.logger.Error("availability update failed",
			"shopperId", shopperID.String(), "isOnline", isOnline, "error", err)
	}
}
