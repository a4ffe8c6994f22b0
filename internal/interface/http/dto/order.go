package dto

// CreateOrderRequest HTTP下单请求
// 订单明细取自当前用户的购物车，价格以下单时数据库中的价格为准
type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required,notblank,max=255" example:"上海市浦东新区世纪大道100号"`
}

// ListOrdersQuery 订单列表分页参数
type ListOrdersQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"10"`
}

// UpdateOrderStatusRequest HTTP修改订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"SHIPPED" enums:"PENDING,PROCESSING,SHIPPED,DELIVERED,COMPLETED,CANCELLED"`
}
