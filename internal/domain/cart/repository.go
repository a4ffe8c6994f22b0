package cart

import (
	"context"
)

// Repository 购物车仓储接口
// 所有明细操作都带cartID，保证只能修改自己购物车中的明细
type Repository interface {
	// FindByUserID 查询用户的购物车(含明细)，不存在返回ErrCartNotFound
	FindByUserID(ctx context.Context, userID uint) (*ShoppingCart, error)

	// LockByUserID 悲观锁查询购物车(含明细)，必须在事务中调用
	LockByUserID(ctx context.Context, userID uint) (*ShoppingCart, error)

	// Create 创建购物车，用户已有购物车时返回ErrCartAlreadyExists
	Create(ctx context.Context, cart *ShoppingCart) error

	// AddItem 加入图书：已存在则数量累加，否则新建明细（原子操作）
	AddItem(ctx context.Context, cartID, bookID uint, quantity int) error

	// UpdateItemQuantity 修改明细数量
	UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) error

	// DeleteItem 删除明细，不存在返回ErrCartItemNotFound
	DeleteItem(ctx context.Context, cartID, itemID uint) error

	// ClearItems 清空购物车明细(保留购物车)
	ClearItems(ctx context.Context, cartID uint) error
}
