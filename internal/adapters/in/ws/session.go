package ws

import (
	"sync"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"

	"github.com/gorilla/websocket"
)

const (
	// writeWait is how long a single frame write may take.
	writeWait = 10 * time.Second
	// pongWait is how long a session survives without a pong.
	pongWait = 60 * time.Second
	// pingPeriod must be shorter than pongWait.
	pingPeriod = 50 * time.Second
	// outboundBuffer bounds frames queued for a slow device.
	outboundBuffer = 32
)

// Conn abstracts the parts of *websocket.Conn the session uses, letting
// tests drive a session without a network connection.
type Conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
	Close() error
}

// session is one live channel to a shopper's device.
type session struct {
	shopperID kernel.UUID
	conn      Conn
	outbound  chan wire.OutboundFrame

	closeOnce   sync.Once
	done        chan struct{}
	closeReason string
}

func newSession(shopperID kernel.UUID, conn Conn) *session {
	return &session{
		shopperID: shopperID,
		conn:      conn,
		outbound:  make(chan wire.OutboundFrame, outboundBuffer),
		done:      make(chan struct{}),
	}
}

// send queues a frame for the device. Returns false when the session is
// closed or its buffer is full; the caller treats both as a missed push.
func (s *session) send(frame wire.OutboundFrame) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.outbound <- frame:
		return true
	default:
		return false
	}
}

// close shuts the session down once. A non-empty reason is sent to the
// device in the close frame so the client can decide whether to reconnect.
func (s *session) close(reason string) {
	s.closeOnce.Do(func() {
		s.closeReason = reason
		if reason != "" {
			message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
			_ = s.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait))
		}
		close(s.done)
		_ = s.conn.Close()
	})
}

// writePump drains the outbound queue onto the wire and keeps the
// connection alive with periodic pings. Runs until the session closes.
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame := <-s.outbound:
			if err := s.conn.WriteJSON(frame); err != nil {
				s.close("")
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(writeWait)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.close("")
				return
			}
		case <-s.done:
			return
		}
	}
}
