// Package channel maintains the shopper device's event channel: it dials
// the dispatcher, re-establishes the connection with exponential backoff
// when it drops, feeds received events to the notification engine, and
// streams GPS samples upstream while connected.
//
// An admin-forced disconnect (close reason admin_offline) turns automatic
// reconnection off; the shopper has to opt back in through Resume.
package channel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

// defaultSampleInterval is how often a GPS sample goes upstream while the
// channel is connected.
const defaultSampleInterval = 5 * time.Second

// Conn is the subset of the websocket connection the manager drives.
// *websocket.Conn satisfies it; tests substitute scripted connections.
type Conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

// Dialer establishes channel connections.
type Dialer interface {
	Dial(ctx context.Context, url string, header http.Header) (Conn, error)
}

// CredentialSource supplies the bearer token presented when dialing. Token
// storage itself is outside this package.
type CredentialSource interface {
	Token(ctx context.Context) (string, error)
}

// PositionSampler supplies GPS telemetry samples. Sampling errors skip the
// tick; the device may simply not have a fix yet.
type PositionSampler interface {
	Sample(ctx context.Context) (wire.LocationFrame, error)
}

// Manager runs the channel lifecycle for one shopper.
type Manager struct {
	url            string
	dialer         Dialer
	creds          CredentialSource
	sampler        PositionSampler
	sampleInterval time.Duration
	onEvent        func(wire.Event)
	onForceStatus  func(wire.ForceStatusFrame)
	logger         *slog.Logger

	connected atomic.Bool

	mu        sync.Mutex
	suspended bool
	resumed   chan struct{}
}

// NewManager creates a channel manager. The sampler may be nil when the
// device has no location source; onEvent and onForceStatus may be nil when
// nobody consumes that frame kind.
func NewManager(
	url string,
	dialer Dialer,
	creds CredentialSource,
	sampler PositionSampler,
	sampleInterval time.Duration,
	onEvent func(wire.Event),
	onForceStatus func(wire.ForceStatusFrame),
	logger *slog.Logger,
) *Manager {
	if sampleInterval <= 0 {
		sampleInterval = defaultSampleInterval
	}
	return &Manager{
		url:            url,
		dialer:         dialer,
		creds:          creds,
		sampler:        sampler,
		sampleInterval: sampleInterval,
		onEvent:        onEvent,
		onForceStatus:  onForceStatus,
		logger:         logger.With("component", "channel_manager"),
		resumed:        make(chan struct{}),
	}
}

// Run keeps the channel alive until the context is cancelled. Connection
// losses trigger exponential-backoff redials; an admin-forced close parks
// the manager until Resume.
func (m *Manager) Run(ctx context.Context) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := m.waitWhileSuspended(ctx); err != nil {
			return err
		}

		conn, err := m.dial(ctx)
		if err != nil {
			m.logger.WarnContext(ctx, "Channel dial failed", "error", err)
			if waitErr := sleep(ctx, policy.NextBackOff()); waitErr != nil {
				return waitErr
			}
			continue
		}

		policy.Reset()
		m.connected.Store(true)
		m.serve(ctx, conn)
		m.connected.Store(false)
	}
}

// Connected reports whether the channel currently has a live connection.
func (m *Manager) Connected() bool {
	return m.connected.Load()
}

// Suspended reports whether automatic reconnection is parked after an
// admin-forced disconnect.
func (m *Manager) Suspended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suspended
}

// Resume re-enables automatic reconnection after an admin-forced
// disconnect. The shopper's explicit go-online action calls this.
func (m *Manager) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.suspended {
		return
	}
	m.suspended = false
	close(m.resumed)
	m.resumed = make(chan struct{})
}

func (m *Manager) suspend() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suspended = true
}

func (m *Manager) waitWhileSuspended(ctx context.Context) error {
	for {
		m.mu.Lock()
		suspended := m.suspended
		resumed := m.resumed
		m.mu.Unlock()

		if !suspended {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-resumed:
		}
	}
}

func (m *Manager) dial(ctx context.Context) (Conn, error) {
	header := http.Header{}
	if m.creds != nil {
		token, err := m.creds.Token(ctx)
		if err != nil {
			return nil, err
		}
		header.Set("Authorization", "Bearer "+token)
	}
	return m.dialer.Dial(ctx, m.url, header)
}

// serve pumps one connection until it drops. The location loop lives only
// as long as the connection does.
func (m *Manager) serve(ctx context.Context, conn Conn) {
	defer func() {
		_ = conn.Close()
	}()

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if m.sampler != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.sampleLoop(serveCtx, conn)
		}()
	}

	m.readLoop(ctx, conn)
	cancel()
	wg.Wait()
}

func (m *Manager) readLoop(ctx context.Context, conn Conn) {
	for {
		var frame wire.OutboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if isAdminOfflineClose(err) {
				m.logger.InfoContext(ctx, "Channel closed by admin, reconnect disabled")
				m.suspend()
			}
			return
		}

		switch frame.Kind {
		case wire.FrameKindEvent:
			if frame.Event != nil && m.onEvent != nil {
				m.onEvent(*frame.Event)
			}
		case wire.FrameKindForceStatus:
			if frame.ForceStatus == nil {
				continue
			}
			if !frame.ForceStatus.IsOnline {
				m.suspend()
			}
			if m.onForceStatus != nil {
				m.onForceStatus(*frame.ForceStatus)
			}
		default:
			m.logger.WarnContext(ctx, "Unknown frame kind", "kind", frame.Kind)
		}
	}
}

func (m *Manager) sampleLoop(ctx context.Context, conn Conn) {
	ticker := time.NewTicker(m.sampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		sample, err := m.sampler.Sample(ctx)
		if err != nil {
			continue
		}

		frame := wire.InboundFrame{Type: wire.FrameLocation, Location: &sample}
		if err := conn.WriteJSON(frame); err != nil {
			return
		}
	}
}

func isAdminOfflineClose(err error) bool {
	var closeErr *websocket.CloseError
	return errors.As(err, &closeErr) && closeErr.Text == wire.CloseReasonAdminOffline
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
