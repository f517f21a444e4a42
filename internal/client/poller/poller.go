// Package poller periodically reconciles the device's local order store
// against the server's authoritative active set. Pushed events can be
// missed while the channel is down; the poll repairs that drift without
// destructively overwriting local state.
package poller

import (
	"context"
	"log/slog"

	"github.com/mnpatel007/delhiveryway-shopper/internal/client/store"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"

	"github.com/robfig/cron/v3"
)

// pollSchedule runs the reconciliation every ten seconds.
const pollSchedule = "*/10 * * * * *"

// ActiveOrdersSource supplies the server's current active set for the
// shopper. The HTTP client implementation lives in source.go.
type ActiveOrdersSource interface {
	ActiveOrders(ctx context.Context) ([]wire.OrderSnapshot, error)
}

// Poller reconciles the local store on a schedule.
type Poller struct {
	source ActiveOrdersSource
	orders *store.Store
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a poller feeding the given store from the given source.
func New(source ActiveOrdersSource, orders *store.Store, logger *slog.Logger) *Poller {
	return &Poller{
		source: source,
		orders: orders,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "reconciliation_poller"),
	}
}

// Poll performs one reconciliation round.
func (p *Poller) Poll(ctx context.Context) error {
	snapshots, err := p.source.ActiveOrders(ctx)
	if err != nil {
		return err
	}

	p.orders.Reconcile(snapshots)
	return nil
}

// Start begins the scheduled reconciliation.
func (p *Poller) Start() error {
	_, err := p.cron.AddFunc(pollSchedule, func() {
		ctx := context.Background()
		if pollErr := p.Poll(ctx); pollErr != nil {
			// A failed poll is not fatal; the next round retries.
			p.logger.WarnContext(ctx, "Reconciliation poll failed", "error", pollErr)
		}
	})
	if err != nil {
		return err
	}

	p.cron.Start()
	p.logger.InfoContext(context.Background(), "Reconciliation poller started (every ten seconds)")
	return nil
}

// Stop stops the scheduled reconciliation.
func (p *Poller) Stop() {
	p.cron.Stop()
	p.logger.InfoContext(context.Background(), "Reconciliation poller stopped")
}
