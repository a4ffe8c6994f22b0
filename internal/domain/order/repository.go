package order

import (
	"context"
	"time"
)

// Repository 订单仓储接口
// 订单和明细在同一事务中创建(事务通过context传递)
type Repository interface {
	// Create 创建订单(包含明细)，回填订单和明细ID
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// ListByUserID 分页查询用户订单(包含明细)，按创建时间倒序
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)

	// UpdateStatus 只更新订单状态
	UpdateStatus(ctx context.Context, id uint, status OrderStatus, updatedAt time.Time) error

	// ListItems 查询订单的全部明细
	ListItems(ctx context.Context, orderID uint) ([]OrderItem, error)

	// FindItemByID 根据明细ID查找(不限定订单)
	FindItemByID(ctx context.Context, itemID uint) (*OrderItem, error)
}
