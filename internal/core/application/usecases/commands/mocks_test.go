package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/application/usecases/commands"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/shopper"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/ports"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllPending(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveByShopper(ctx context.Context, shopperID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, shopperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetDeliveredByShopper(
	ctx context.Context,
	shopperID kernel.UUID,
	limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, shopperID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockShopperRepository struct{ mock.Mock }

func (m *MockShopperRepository) Add(ctx context.Context, s *shopper.Shopper) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShopperRepository) Update(ctx context.Context, s *shopper.Shopper) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShopperRepository) Get(ctx context.Context, id kernel.UUID) (*shopper.Shopper, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopper.Shopper), args.Error(1)
}

func (m *MockShopperRepository) GetAllOnline(ctx context.Context) ([]*shopper.Shopper, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shopper.Shopper), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ShopperRepository() ports.ShopperRepository {
	args := m.Called()
	return args.Get(0).(ports.ShopperRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockShopperUoWFactory struct{ mock.Mock }

func (m *MockShopperUoWFactory) Create() commands.ShopperUoW {
	args := m.Called()
	return args.Get(0).(commands.ShopperUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, shopperID kernel.UUID, event wire.Event) {
	m.Called(ctx, shopperID, event)
}

func (m *MockEventPublisher) ForceAvailability(
	ctx context.Context,
	shopperID kernel.UUID,
	isOnline bool,
	reason string,
) {
	m.Called(ctx, shopperID, isOnline, reason)
}

func (m *MockEventPublisher) DisconnectShopper(ctx context.Context, shopperID kernel.UUID) {
	m.Called(ctx, shopperID)
}

var handlerClock = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func buildOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

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

	o, err := order.NewOrder(kernel.NewUUID(), "DW-1042", []order.LineItem{item},
		order.NewPricing(total, fee, commission), addr, handlerClock)
	require.NoError(t, err)

	if status == order.PendingShopper {
		return o
	}

	require.NoError(t, o.Accept(kernel.NewUUID(), handlerClock))
	path := []order.Status{
		order.ShopperAtShop,
		order.ShoppingInProgress,
		order.FinalShopping,
		order.OutForDelivery,
		order.Delivered,
	}
	if status == order.AcceptedByShopper {
		return o
	}
	for _, next := range path {
		require.NoError(t, o.TransitionTo(next, order.ActorShopper, "", handlerClock))
		if next == status {
			return o
		}
	}
	t.Fatalf("unreachable status %s", status)
	return nil
}

func buildRevision(t *testing.T, o *order.Order) order.Revision {
	t.Helper()

	price, err := kernel.NewMoney(7000)
	require.NoError(t, err)
	item, err := order.NewRevisedItem(o.Items()[0].ID(), o.Items()[0].Name(), 1, price, true, "substitute")
	require.NoError(t, err)
	rev, err := order.NewRevision([]order.RevisedItem{item}, "One substitution", handlerClock)
	require.NoError(t, err)
	return rev
}

func buildShopper(t *testing.T) *shopper.Shopper {
	t.Helper()

	s, err := shopper.NewShopper(kernel.NewUUID(), "Priya", "")
	require.NoError(t, err)
	require.NoError(t, s.GoOnline())
	return s
}
