package cmd

import (
	"github.com/mnpatel007/delhiveryway-shopper/internal/adapters/out/postgres"
	"github.com/mnpatel007/delhiveryway-shopper/internal/clock"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/application/usecases/commands"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/application/usecases/queries"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      clock.Clock
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      clock.NewSystem(),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shopperUoWFactory() commands.ShopperUoWFactory {
	return FuncShopperUoWFactory(func() commands.ShopperUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) combinedUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCreateShopperCommandHandler() commands.CreateShopperCommandHandler {
	return commands.NewCreateShopperCommandHandler(c.shopperUoWFactory())
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.combinedUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler(
	publisher ports.EventPublisher,
) commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.combinedUoWFactory(), publisher, c.clock)
}

func (c *CompositionRoot) CreateBeginRevisionCommandHandler(
	publisher ports.EventPublisher,
) commands.BeginRevisionCommandHandler {
	return commands.NewBeginRevisionCommandHandler(c.orderUoWFactory(), publisher, c.clock)
}

func (c *CompositionRoot) CreateResolveRevisionCommandHandler(
	publisher ports.EventPublisher,
) commands.ResolveRevisionCommandHandler {
	return commands.NewResolveRevisionCommandHandler(c.orderUoWFactory(), publisher, c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler(
	publisher ports.EventPublisher,
) commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.combinedUoWFactory(), publisher, c.clock)
}

func (c *CompositionRoot) CreateForceOrderStatusCommandHandler(
	publisher ports.EventPublisher,
) commands.ForceOrderStatusCommandHandler {
	return commands.NewForceOrderStatusCommandHandler(c.combinedUoWFactory(), publisher, c.clock)
}

func (c *CompositionRoot) CreateSetAvailabilityCommandHandler() commands.SetAvailabilityCommandHandler {
	return commands.NewSetAvailabilityCommandHandler(c.shopperUoWFactory())
}

func (c *CompositionRoot) CreateUpdateShopperLocationCommandHandler() commands.UpdateShopperLocationCommandHandler {
	return commands.NewUpdateShopperLocationCommandHandler(c.shopperUoWFactory())
}

func (c *CompositionRoot) CreateForceShopperAvailabilityCommandHandler(
	publisher ports.EventPublisher,
) commands.ForceShopperAvailabilityCommandHandler {
	return commands.NewForceShopperAvailabilityCommandHandler(c.shopperUoWFactory(), publisher)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler(
	publisher ports.EventPublisher,
) commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.combinedUoWFactory(), publisher, c.clock)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetEarningsSummaryQueryHandler() queries.GetEarningsSummaryQueryHandler {
	return queries.NewGetEarningsSummaryQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncShopperUoWFactory func() commands.ShopperUoW

func (f FuncShopperUoWFactory) Create() commands.ShopperUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
