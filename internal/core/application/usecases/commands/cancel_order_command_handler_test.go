package commands_test

import (
	"testing"

	"github.com/mnpatel007/delhiveryway-shopper/internal/clock"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/application/usecases/commands"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler(t *testing.T) {
	fixedClock := clock.NewFixed(handlerClock)

	t.Run("should cancel, free the shopper slot, and push order_cancelled", func(t *testing.T) {
		aggregate := buildOrder(t, order.ShoppingInProgress)
		shopperAggregate := buildShopper(t)
		require.NoError(t, shopperAggregate.TakeOrder())

		orderRepo := &MockOrderRepository{}
		shopperRepo := &MockShopperRepository{}
		uow := &MockUoW{}
		factory := &MockUoWFactory{}
		publisher := &MockEventPublisher{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("ShopperRepository").Return(shopperRepo)
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil)
		shopperRepo.On("Get", mock.Anything, *aggregate.Shopper()).Return(shopperAggregate, nil)
		shopperRepo.On("Update", mock.Anything, shopperAggregate).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		publisher.On("Publish", mock.Anything, *aggregate.Shopper(), mock.MatchedBy(func(e wire.Event) bool {
			return e.Type == wire.EventOrderCancelled && e.Payload["reason"] == "Customer changed their mind"
		})).Return()

		cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), "Customer changed their mind", order.ActorCustomer)
		require.NoError(t, err)

		handler := commands.NewCancelOrderCommandHandler(factory, publisher, fixedClock)
		err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, aggregate.Status())
		assert.Zero(t, shopperAggregate.ActiveOrders())
		publisher.AssertExpectations(t)
	})

	t.Run("should treat cancelling a cancelled order as a no-op success", func(t *testing.T) {
		aggregate := buildOrder(t, order.PendingShopper)
		require.NoError(t, aggregate.Cancel("First cancel", order.ActorAdmin, handlerClock))

		orderRepo := &MockOrderRepository{}
		uow := &MockUoW{}
		factory := &MockUoWFactory{}
		publisher := &MockEventPublisher{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), "Second cancel", order.ActorAdmin)
		require.NoError(t, err)

		handler := commands.NewCancelOrderCommandHandler(factory, publisher, fixedClock)
		err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should fail once the order is out for delivery", func(t *testing.T) {
		aggregate := buildOrder(t, order.OutForDelivery)

		orderRepo := &MockOrderRepository{}
		uow := &MockUoW{}
		factory := &MockUoWFactory{}
		publisher := &MockEventPublisher{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), "Too late", order.ActorCustomer)
		require.NoError(t, err)

		handler := commands.NewCancelOrderCommandHandler(factory, publisher, fixedClock)
		err = handler.Handle(t.Context(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("command should require a reason", func(t *testing.T) {
		aggregate := buildOrder(t, order.PendingShopper)

		_, err := commands.NewCancelOrderCommand(aggregate.ID(), "", order.ActorAdmin)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
