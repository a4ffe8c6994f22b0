package order

import (
	"time"
)

// 事件路由键
const (
	RoutingKeyCreated       = "order.created"
	RoutingKeyStatusChanged = "order.status_changed"
)

// CreatedEvent 订单创建事件(事务提交后发布)
type CreatedEvent struct {
	OrderID    uint               `json:"order_id"`
	OrderNo    string             `json:"order_no"`
	UserID     uint               `json:"user_id"`
	Total      string             `json:"total"`
	Items      []CreatedEventItem `json:"items"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// CreatedEventItem 订单创建事件中的明细
type CreatedEventItem struct {
	BookID   uint   `json:"book_id"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// StatusChangedEvent 订单状态变更事件
type StatusChangedEvent struct {
	OrderID    uint      `json:"order_id"`
	OrderNo    string    `json:"order_no"`
	UserID     uint      `json:"user_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewCreatedEvent 根据订单构造创建事件
func NewCreatedEvent(o *Order) CreatedEvent {
	items := make([]CreatedEventItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = CreatedEventItem{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price.StringFixed(2),
		}
	}
	return CreatedEvent{
		OrderID:    o.ID,
		OrderNo:    o.OrderNo,
		UserID:     o.UserID,
		Total:      o.Total.StringFixed(2),
		Items:      items,
		OccurredAt: o.CreatedAt,
	}
}
