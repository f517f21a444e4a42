package jobs_test

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/clock"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/application/usecases/commands"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/shopper"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/ports"
	"github.com/mnpatel007/delhiveryway-shopper/internal/jobs"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"

	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	pending []*order.Order
}

func (r *fakeOrderRepo) Add(context.Context, *order.Order) error    { return nil }
func (r *fakeOrderRepo) Update(context.Context, *order.Order) error { return nil }
func (r *fakeOrderRepo) Get(context.Context, kernel.UUID) (*order.Order, error) {
	return nil, nil
}
func (r *fakeOrderRepo) GetAllPending(context.Context) ([]*order.Order, error) {
	return r.pending, nil
}
func (r *fakeOrderRepo) GetActiveByShopper(context.Context, kernel.UUID) ([]*order.Order, error) {
	return nil, nil
}
func (r *fakeOrderRepo) GetDeliveredByShopper(context.Context, kernel.UUID, int) ([]*order.Order, error) {
	return nil, nil
}

type fakeShopperRepo struct {
	online []*shopper.Shopper
}

func (r *fakeShopperRepo) Add(context.Context, *shopper.Shopper) error    { return nil }
func (r *fakeShopperRepo) Update(context.Context, *shopper.Shopper) error { return nil }
func (r *fakeShopperRepo) Get(context.Context, kernel.UUID) (*shopper.Shopper, error) {
	return nil, nil
}
func (r *fakeShopperRepo) GetAllOnline(context.Context) ([]*shopper.Shopper, error) {
	return r.online, nil
}

type fakeUoW struct {
	orders   *fakeOrderRepo
	shoppers *fakeShopperRepo
}

func (u *fakeUoW) Begin(context.Context) error                { return nil }
func (u *fakeUoW) Commit(context.Context) error               { return nil }
func (u *fakeUoW) Rollback(context.Context) error             { return nil }
func (u *fakeUoW) OrderRepository() ports.OrderRepository     { return u.orders }
func (u *fakeUoW) ShopperRepository() ports.ShopperRepository { return u.shoppers }

type fakeUoWFactory struct {
	uow *fakeUoW
}

func (f *fakeUoWFactory) Create() commands.UoW { return f.uow }

type countingPublisher struct {
	published atomic.Int64
}

func (p *countingPublisher) Publish(context.Context, kernel.UUID, wire.Event) {
	p.published.Add(1)
}
func (p *countingPublisher) ForceAvailability(context.Context, kernel.UUID, bool, string) {}
func (p *countingPublisher) DisconnectShopper(context.Context, kernel.UUID)               {}

func TestDispatchOrderJob_OffersUnacceptedOrderOncePerTick(t *testing.T) {
	now := time.Now()

	price, err := kernel.NewMoney(6500)
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), "Milk 1L", 2, price)
	require.NoError(t, err)
	total, err := kernel.NewMoney(13000)
	require.NoError(t, err)
	fee, err := kernel.NewMoney(3000)
	require.NoError(t, err)
	commission, err := kernel.NewMoney(2000)
	require.NoError(t, err)
	addr, err := order.NewAddress("12 MG Road", "Bengaluru", "560001", "", "")
	require.NoError(t, err)
	pending, err := order.NewOrder(kernel.NewUUID(), "DW-3001", []order.LineItem{item},
		order.NewPricing(total, fee, commission), addr, now)
	require.NoError(t, err)

	worker, err := shopper.NewShopper(kernel.NewUUID(), "Priya", "")
	require.NoError(t, err)
	require.NoError(t, worker.GoOnline())

	factory := &fakeUoWFactory{uow: &fakeUoW{
		orders:   &fakeOrderRepo{pending: []*order.Order{pending}},
		shoppers: &fakeShopperRepo{online: []*shopper.Shopper{worker}},
	}}
	publisher := &countingPublisher{}
	handler := commands.NewDispatchOrderCommandHandler(factory, publisher, clock.NewSystem())

	shopPosition, err := kernel.NewGeoPosition(12.9716, 77.5946, -1, -1, now)
	require.NoError(t, err)

	job := jobs.NewDispatchOrderJob(handler, shopPosition, slog.New(slog.DiscardHandler))
	require.NoError(t, job.Start())
	time.Sleep(2200 * time.Millisecond)
	job.Stop()

	// One unaccepted pending order is re-offered once per tick, never more.
	count := publisher.published.Load()
	require.GreaterOrEqual(t, count, int64(1))
	require.LessOrEqual(t, count, int64(3))
}
