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

func TestBeginRevisionCommandHandler(t *testing.T) {
	fixedClock := clock.NewFixed(handlerClock)

	t.Run("should attach the revision and push order_update", func(t *testing.T) {
		aggregate := buildOrder(t, order.ShoppingInProgress)
		shopperID := *aggregate.Shopper()
		revision := buildRevision(t, aggregate)

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
		publisher.On("Publish", mock.Anything, shopperID, mock.MatchedBy(func(e wire.Event) bool {
			return e.Type == wire.EventOrderUpdate && e.OrderID == aggregate.ID().String()
		})).Return()

		cmd, err := commands.NewBeginRevisionCommand(
			aggregate.ID(), revision.Items(), revision.Note(), handlerClock)
		require.NoError(t, err)

		handler := commands.NewBeginRevisionCommandHandler(factory, publisher, fixedClock)
		err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, order.CustomerReviewingRevision, aggregate.Status())
		require.NotNil(t, aggregate.Revision())
		orderRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("should treat a retry while awaiting review as a no-op success", func(t *testing.T) {
		aggregate := buildOrder(t, order.ShoppingInProgress)
		revision := buildRevision(t, aggregate)
		require.NoError(t, aggregate.BeginRevision(revision, handlerClock))

		orderRepo := &MockOrderRepository{}
		uow := &MockUoW{}
		factory := &MockOrderUoWFactory{}
		publisher := &MockEventPublisher{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		cmd, err := commands.NewBeginRevisionCommand(
			aggregate.ID(), revision.Items(), revision.Note(), handlerClock)
		require.NoError(t, err)

		handler := commands.NewBeginRevisionCommandHandler(factory, publisher, fixedClock)
		err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should reject a revision outside active shopping", func(t *testing.T) {
		aggregate := buildOrder(t, order.AcceptedByShopper)
		revision := buildRevision(t, aggregate)

		orderRepo := &MockOrderRepository{}
		uow := &MockUoW{}
		factory := &MockOrderUoWFactory{}
		publisher := &MockEventPublisher{}

		factory.On("Create").Return(uow)
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		uow.On("Rollback", mock.Anything).Return(nil)

		cmd, err := commands.NewBeginRevisionCommand(
			aggregate.ID(), revision.Items(), revision.Note(), handlerClock)
		require.NoError(t, err)

		handler := commands.NewBeginRevisionCommandHandler(factory, publisher, fixedClock)
		err = handler.Handle(t.Context(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, aggregate.Revision())
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
