package order_test

import (
	"testing"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRevisedItem(t *testing.T) {
	price, err := kernel.NewMoney(7000)
	require.NoError(t, err)

	t.Run("should create an available item", func(t *testing.T) {
		item, err := order.NewRevisedItem(kernel.NewUUID(), "Milk 1L", 2, price, true, "full-fat only")

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.IsAvailable())
		assert.Equal(t, int64(14000), item.Subtotal().Paise())
	})

	t.Run("should create an unavailable item with zero contribution", func(t *testing.T) {
		item, err := order.NewRevisedItem(kernel.NewUUID(), "Bread", 0, kernel.Money{}, false, "out of stock")

		require.NoError(t, err)
		assert.False(t, item.IsAvailable())
		assert.True(t, item.Subtotal().IsZero())
	})

	t.Run("should reject an available item with zero quantity", func(t *testing.T) {
		_, err := order.NewRevisedItem(kernel.NewUUID(), "Milk 1L", 0, price, true, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "mark it unavailable instead")
	})

	t.Run("should reject an available item without a positive price", func(t *testing.T) {
		_, err := order.NewRevisedItem(kernel.NewUUID(), "Milk 1L", 2, kernel.Money{}, true, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require a name", func(t *testing.T) {
		_, err := order.NewRevisedItem(kernel.NewUUID(), "", 2, price, true, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewRevision(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 11, 30, 0, 0, time.UTC)

	milkPrice, err := kernel.NewMoney(7000)
	require.NoError(t, err)
	ricePrice, err := kernel.NewMoney(12000)
	require.NoError(t, err)

	milk, err := order.NewRevisedItem(kernel.NewUUID(), "Milk 1L", 2, milkPrice, true, "")
	require.NoError(t, err)
	rice, err := order.NewRevisedItem(kernel.NewUUID(), "Rice 5kg", 1, ricePrice, true, "")
	require.NoError(t, err)
	bread, err := order.NewRevisedItem(kernel.NewUUID(), "Bread", 0, kernel.Money{}, false, "out of stock")
	require.NoError(t, err)

	t.Run("should derive the proposed total from available items only", func(t *testing.T) {
		rev, err := order.NewRevision([]order.RevisedItem{milk, rice, bread}, "Substitutions", createdAt)

		require.NoError(t, err)
		require.NoError(t, rev.Validate())
		assert.Equal(t, int64(2*7000+12000), rev.ProposedTotal().Paise())
		assert.Equal(t, "Substitutions", rev.Note())
		assert.Equal(t, createdAt, rev.CreatedAt())
	})

	t.Run("should require at least one item", func(t *testing.T) {
		_, err := order.NewRevision(nil, "", createdAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require a creation time", func(t *testing.T) {
		_, err := order.NewRevision([]order.RevisedItem{milk}, "", time.Time{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unconstructed items", func(t *testing.T) {
		var broken order.RevisedItem

		_, err := order.NewRevision([]order.RevisedItem{broken}, "", createdAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrRevisedItemIsNotConstructed)
	})

	t.Run("should return items as a copy", func(t *testing.T) {
		rev, err := order.NewRevision([]order.RevisedItem{milk, rice}, "", createdAt)
		require.NoError(t, err)

		items := rev.Items()
		items[0] = order.RevisedItem{}

		assert.NoError(t, rev.Items()[0].Validate())
	})
}
