// Package client composes the shopper device runtime: the event channel
// feeds every received event into both the local order store and the
// notification escalation engine, and a reconciliation poller trues the
// store up against the REST API.
package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/client/alert"
	"github.com/mnpatel007/delhiveryway-shopper/internal/client/channel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/client/poller"
	"github.com/mnpatel007/delhiveryway-shopper/internal/client/store"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"
)

// Config carries the endpoints and device traits the runtime needs.
type Config struct {
	// ChannelURL is the websocket endpoint of this shopper's event channel.
	ChannelURL string
	// APIBaseURL is the REST base the reconciliation poll reads from.
	APIBaseURL string
	// ShopperID identifies the shopper on both surfaces.
	ShopperID string
	// SampleInterval is how often GPS samples go upstream; zero keeps the
	// channel default.
	SampleInterval time.Duration
	// Constrained marks a device where system notifications are unreliable;
	// urgent alerts escalate straight to the blocking prompt there.
	Constrained bool
}

// App is the assembled device runtime.
type App struct {
	orders  *store.Store
	alerts  *alert.Engine
	channel *channel.Manager
	poller  *poller.Poller
	logger  *slog.Logger
}

// NewApp wires the runtime together. Every event the channel delivers is
// applied to the order store and raised on the escalation engine; which of
// the two the shopper notices first does not matter, both read the same
// payload.
func NewApp(
	cfg Config,
	dialer channel.Dialer,
	creds channel.CredentialSource,
	sampler channel.PositionSampler,
	notifier, audio, banner, prompt alert.Channel,
	logger *slog.Logger,
) *App {
	orders := store.New()
	alerts := alert.NewEngine(notifier, audio, banner, prompt,
		alert.NewSystemScheduler(), cfg.Constrained, logger)

	onEvent := func(event wire.Event) {
		orders.ApplyEvent(event)
		alerts.Raise(context.Background(), event)
	}
	onForceStatus := func(frame wire.ForceStatusFrame) {
		logger.Info("Availability forced by admin",
			"isOnline", frame.IsOnline, "reason", frame.Reason)
	}

	manager := channel.NewManager(cfg.ChannelURL, dialer, creds, sampler,
		cfg.SampleInterval, onEvent, onForceStatus, logger)

	source := poller.NewHTTPSource(cfg.APIBaseURL, cfg.ShopperID)
	reconciler := poller.New(source, orders, logger)

	return &App{
		orders:  orders,
		alerts:  alerts,
		channel: manager,
		poller:  reconciler,
		logger:  logger,
	}
}

// Run starts the reconciliation poll and drives the channel until the
// context is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.poller.Start(); err != nil {
		return err
	}
	defer a.poller.Stop()

	return a.channel.Run(ctx)
}

// GoOnline is the shopper's explicit opt back in. It resumes a channel
// parked by an admin force-offline; the accompanying availability update
// goes through the REST surface.
func (a *App) GoOnline() {
	a.channel.Resume()
}

// Acknowledge marks an alert as seen, cancelling its pending follow-ups.
func (a *App) Acknowledge(orderID string, eventType wire.EventType) bool {
	return a.alerts.Ack(orderID, eventType)
}

// Orders returns the current local view of the shopper's active orders.
func (a *App) Orders() []wire.OrderSnapshot {
	return a.orders.All()
}

// Connected reports whether the event channel currently has a live
// connection.
func (a *App) Connected() bool {
	return a.channel.Connected()
}
