package order

import (
	"github.com/xiebiao/bookshop/internal/domain/order"
)

const timeLayout = "2006-01-02 15:04:05"

// OrderResponse 订单DTO
type OrderResponse struct {
	ID              uint                `json:"id"`
	OrderNo         string              `json:"order_no"`
	UserID          uint                `json:"user_id"`
	OrderDate       string              `json:"order_date"`
	ShippingAddress string              `json:"shipping_address"`
	Total           string              `json:"total"`
	Status          string              `json:"status"`
	StatusText      string              `json:"status_text"`
	Items           []OrderItemResponse `json:"items"`
}

// OrderItemResponse 订单明细DTO
type OrderItemResponse struct {
	ID       uint   `json:"id"`
	OrderID  uint   `json:"order_id"`
	BookID   uint   `json:"book_id"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`    // 下单时单价
	Subtotal string `json:"subtotal"` // 单价 × 数量
}

// ListOrdersResponse 订单分页DTO
type ListOrdersResponse struct {
	List       []*OrderResponse `json:"list"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

func toOrderResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		OrderDate:       o.OrderDate.Format(timeLayout),
		ShippingAddress: o.ShippingAddress,
		Total:           o.Total.StringFixed(2),
		Status:          o.Status.String(),
		StatusText:      o.Status.Label(),
		Items:           toOrderItemResponses(o.Items),
	}
}

func toOrderItemResponse(item order.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:       item.ID,
		OrderID:  item.OrderID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
		Price:    item.Price.StringFixed(2),
		Subtotal: item.Subtotal().StringFixed(2),
	}
}

func toOrderItemResponses(items []order.OrderItem) []OrderItemResponse {
	list := make([]OrderItemResponse, len(items))
	for i, item := range items {
		list[i] = toOrderItemResponse(item)
	}
	return list
}
