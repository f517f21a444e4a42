package commands_test

import (
	"testing"

	"github.com/mnpatel007/delhiveryway-shopper/internal/clock"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/application/usecases/commands"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func reviewingOrder(t *testing.T) *order.Order {
	t.Helper()

	aggregate := buildOrder(t, order.ShoppingInProgress)
	require.NoError(t, aggregate.BeginRevision(buildRevision(t, aggregate), handlerClock))
	return aggregate
}

func TestResolveRevisionCommandHandler(t *testing.T) {
	fixedClock := clock.NewFixed(handlerClock)

	t.Run("approval should merge the final total and push revision_approved", func(t *testing.T) {
		aggregate := reviewingOrder(t)
		finalTotal, err := kernel.NewMoney(9000)
		require.NoError(t, err)

		orderRepo := &MockOrderRepository{}
		uow := &MockUoW{}
		factory := &MockOrderUoWFactory{}
		publisher := &MockEventPublisher{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		publisher.On("Publish", mock.Anything, *aggregate.Shopper(), mock.MatchedBy(func(e wire.Event) bool {
			return e.Type == wire.EventRevisionApproved
		})).Return()

		cmd, err := commands.NewResolveRevisionCommand(aggregate.ID(), true, finalTotal)
		require.NoError(t, err)

		handler := commands.NewResolveRevisionCommandHandler(factory, publisher, fixedClock)
		err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.CustomerApprovedRevision, aggregate.Status())
		assert.True(t, aggregate.Pricing().Total().IsEqual(finalTotal))
		publisher.AssertExpectations(t)
	})

	t.Run("rejection should revert to shopping and push revision_rejected", func(t *testing.T) {
		aggregate := reviewingOrder(t)

		orderRepo := &MockOrderRepository{}
		uow := &MockUoW{}
		factory := &MockOrderUoWFactory{}
		publisher := &MockEventPublisher{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		publisher.On("Publish", mock.Anything, *aggregate.Shopper(), mock.MatchedBy(func(e wire.Event) bool {
			return e.Type == wire.EventRevisionRejected
		})).Return()

		cmd, err := commands.NewResolveRevisionCommand(aggregate.ID(), false, kernel.Money{})
		require.NoError(t, err)

		handler := commands.NewResolveRevisionCommandHandler(factory, publisher, fixedClock)
		err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.ShoppingInProgress, aggregate.Status())
		assert.Nil(t, aggregate.Revision())
		publisher.AssertExpectations(t)
	})

	t.Run("should fail when no revision is pending", func(t *testing.T) {
		aggregate := buildOrder(t, order.ShoppingInProgress)

		orderRepo := &MockOrderRepository{}
		uow := &MockUoW{}
		factory := &MockOrderUoWFactory{}
		publisher := &MockEventPublisher{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		cmd, err := commands.NewResolveRevisionCommand(aggregate.ID(), true, kernel.Money{})
		require.NoError(t, err)

		handler := commands.NewResolveRevisionCommandHandler(factory, publisher, fixedClock)
		err = handler.Handle(t.Context(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}
