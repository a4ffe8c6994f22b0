package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// Transactor 事务执行(由mysql.TxManager实现)
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 订单事件发布(由messaging包实现)
// 在事务提交之后调用，返回的错误只记录日志
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, evt order.CreatedEvent) error
	PublishOrderStatusChanged(ctx context.Context, evt order.StatusChangedEvent) error
}
