package mysql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql/mysqltest"
)

func newCart(t *testing.T, repo cart.Repository, userID uint) *cart.ShoppingCart {
	t.Helper()
	c := cart.NewShoppingCart(userID)
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

// quantityOf 从用户购物车中读取明细数量，明细不存在时返回0
func quantityOf(t *testing.T, repo cart.Repository, userID, itemID uint) int {
	t.Helper()
	c, err := repo.FindByUserID(context.Background(), userID)
	require.NoError(t, err)
	if item, ok := c.FindItem(itemID); ok {
		return item.Quantity
	}
	return 0
}

func TestCartRepository_CreateAndFind(t *testing.T) {
	repo := mysql.NewCartRepository(mysqltest.Open(t))
	ctx := context.Background()

	_, err := repo.FindByUserID(ctx, 1)
	assert.ErrorIs(t, err, cart.ErrCartNotFound)

	c := newCart(t, repo, 1)
	assert.NotZero(t, c.ID)

	assert.ErrorIs(t, repo.Create(ctx, cart.NewShoppingCart(1)), cart.ErrCartAlreadyExists)

	got, err := repo.FindByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.True(t, got.IsEmpty())
}

func TestCartRepository_AddItemMergesSameBook(t *testing.T) {
	repo := mysql.NewCartRepository(mysqltest.Open(t))
	ctx := context.Background()
	c := newCart(t, repo, 1)

	require.NoError(t, repo.AddItem(ctx, c.ID, 10, 2))
	require.NoError(t, repo.AddItem(ctx, c.ID, 10, 3))
	require.NoError(t, repo.AddItem(ctx, c.ID, 11, 1))

	got, err := repo.FindByUserID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)

	assert.Equal(t, uint(10), got.Items[0].BookID)
	assert.Equal(t, 5, got.Items[0].Quantity)
	assert.Equal(t, 6, got.TotalQuantity())
}

func TestCartRepository_ItemsScopedToCart(t *testing.T) {
	repo := mysql.NewCartRepository(mysqltest.Open(t))
	ctx := context.Background()
	mine := newCart(t, repo, 1)
	other := newCart(t, repo, 2)

	require.NoError(t, repo.AddItem(ctx, other.ID, 10, 1))
	otherCart, err := repo.FindByUserID(ctx, 2)
	require.NoError(t, err)
	foreignItemID := otherCart.Items[0].ID

	assert.ErrorIs(t, repo.UpdateItemQuantity(ctx, mine.ID, foreignItemID, 9), cart.ErrCartItemNotFound)
	assert.ErrorIs(t, repo.DeleteItem(ctx, mine.ID, foreignItemID), cart.ErrCartItemNotFound)

	assert.Equal(t, 1, quantityOf(t, repo, 2, foreignItemID))
}

func TestCartRepository_UpdateDeleteClear(t *testing.T) {
	repo := mysql.NewCartRepository(mysqltest.Open(t))
	ctx := context.Background()
	c := newCart(t, repo, 1)
	require.NoError(t, repo.AddItem(ctx, c.ID, 10, 1))
	require.NoError(t, repo.AddItem(ctx, c.ID, 11, 1))

	got, err := repo.FindByUserID(ctx, 1)
	require.NoError(t, err)
	first, second := got.Items[0].ID, got.Items[1].ID

	require.NoError(t, repo.UpdateItemQuantity(ctx, c.ID, first, 7))
	assert.Equal(t, 7, quantityOf(t, repo, 1, first))

	require.NoError(t, repo.DeleteItem(ctx, c.ID, second))
	assert.ErrorIs(t, repo.DeleteItem(ctx, c.ID, second), cart.ErrCartItemNotFound)

	require.NoError(t, repo.ClearItems(ctx, c.ID))
	got, err = repo.LockByUserID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.Equal(t, c.ID, got.ID)
}
