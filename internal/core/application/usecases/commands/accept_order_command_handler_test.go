package commands_test

import (
	"testing"

	"github.com/mnpatel007/delhiveryway-shopper/internal/clock"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/application/usecases/commands"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptOrderCommandHandler(t *testing.T) {
	fixedClock := clock.NewFixed(handlerClock)

	t.Run("should pin the order to the shopper and consume a slot", func(t *testing.T) {
		aggregate := buildOrder(t, order.PendingShopper)
		shopperAggregate := buildShopper(t)

		orderRepo := &MockOrderRepository{}
		shopperRepo := &MockShopperRepository{}
		uow := &MockUoW{}
		factory := &MockUoWFactory{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("ShopperRepository").Return(shopperRepo)
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		shopperRepo.On("Get", mock.Anything, shopperAggregate.ID()).Return(shopperAggregate, nil)
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil)
		shopperRepo.On("Update", mock.Anything, shopperAggregate).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), shopperAggregate.ID())
		require.NoError(t, err)

		handler := commands.NewAcceptOrderCommandHandler(factory, fixedClock)
		err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.AcceptedByShopper, aggregate.Status())
		require.NotNil(t, aggregate.Shopper())
		assert.True(t, aggregate.Shopper().IsEqual(shopperAggregate.ID()))
		assert.Equal(t, 1, shopperAggregate.ActiveOrders())
		orderRepo.AssertExpectations(t)
		shopperRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should treat a retry by the accepting shopper as a no-op success", func(t *testing.T) {
		aggregate := buildOrder(t, order.AcceptedByShopper)
		shopperID := *aggregate.Shopper()

		orderRepo := &MockOrderRepository{}
		uow := &MockUoW{}
		factory := &MockUoWFactory{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), shopperID)
		require.NoError(t, err)

		handler := commands.NewAcceptOrderCommandHandler(factory, fixedClock)
		err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject acceptance of an order another shopper holds", func(t *testing.T) {
		aggregate := buildOrder(t, order.AcceptedByShopper)
		rival := buildShopper(t)

		orderRepo := &MockOrderRepository{}
		shopperRepo := &MockShopperRepository{}
		uow := &MockUoW{}
		factory := &MockUoWFactory{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("ShopperRepository").Return(shopperRepo)
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		shopperRepo.On("Get", mock.Anything, rival.ID()).Return(rival, nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), rival.ID())
		require.NoError(t, err)

		handler := commands.NewAcceptOrderCommandHandler(factory, fixedClock)
		err = handler.Handle(t.Context(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should fail when the shopper has no free slot", func(t *testing.T) {
		aggregate := buildOrder(t, order.PendingShopper)
		shopperAggregate := buildShopper(t)
		for shopperAggregate.CanTakeOrder() {
			require.NoError(t, shopperAggregate.TakeOrder())
		}

		orderRepo := &MockOrderRepository{}
		shopperRepo := &MockShopperRepository{}
		uow := &MockUoW{}
		factory := &MockUoWFactory{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("ShopperRepository").Return(shopperRepo)
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		shopperRepo.On("Get", mock.Anything, shopperAggregate.ID()).Return(shopperAggregate, nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), shopperAggregate.ID())
		require.NoError(t, err)

		handler := commands.NewAcceptOrderCommandHandler(factory, fixedClock)
		err = handler.Handle(t.Context(), cmd)

		require.Error(t, err)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should propagate a missing order", func(t *testing.T) {
		orderID := kernel.NewUUID()

		orderRepo := &MockOrderRepository{}
		uow := &MockUoW{}
		factory := &MockUoWFactory{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		orderRepo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID.String()))
		uow.On("Rollback", mock.Anything).Return(nil)

		cmd, err := commands.NewAcceptOrderCommand(orderID, kernel.NewUUID())
		require.NoError(t, err)

		handler := commands.NewAcceptOrderCommandHandler(factory, fixedClock)
		err = handler.Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
