package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createOrderUseCase   *apporder.CreateOrderUseCase
	listOrdersUseCase    *apporder.ListOrdersUseCase
	getOrderItemsUseCase *apporder.GetOrderItemsUseCase
	getOrderItemUseCase  *apporder.GetOrderItemUseCase
	updateStatusUseCase  *apporder.UpdateOrderStatusUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createOrderUseCase *apporder.CreateOrderUseCase,
	listOrdersUseCase *apporder.ListOrdersUseCase,
	getOrderItemsUseCase *apporder.GetOrderItemsUseCase,
	getOrderItemUseCase *apporder.GetOrderItemUseCase,
	updateStatusUseCase *apporder.UpdateOrderStatusUseCase,
) *OrderHandler {
	return &OrderHandler{
		createOrderUseCase:   createOrderUseCase,
		listOrdersUseCase:    listOrdersUseCase,
		getOrderItemsUseCase: getOrderItemsUseCase,
		getOrderItemUseCase:  getOrderItemUseCase,
		updateStatusUseCase:  updateStatusUseCase,
	}
}

// CreateOrder 购物车结算下单
// @Summary      下单
// @Description  把当前用户购物车中的全部图书生成订单，按数据库当前价格计价，成功后清空购物车
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "收货地址"
// @Success      201 {object} response.Response{data=order.OrderResponse} "下单成功"
// @Failure      400 {object} response.Response "购物车为空或参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "购物车中的图书已下架"
// @Router       /api/v1/orders [post]
//
// 锁定购物车、创建订单、清空购物车在同一事务中完成，任一步失败购物车保持原样
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.createOrderUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		UserID:          middleware.MustGetUserID(c),
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListOrders 我的订单
// @Summary      我的订单
// @Description  按下单时间倒序，包含订单明细
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(10)
// @Success      200 {object} response.Response{data=order.ListOrdersResponse}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var q dto.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.listOrdersUseCase.Execute(c.Request.Context(), apporder.ListOrdersRequest{
		UserID:   middleware.MustGetUserID(c),
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetOrderItems 订单明细列表
// @Summary      订单明细
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        orderId path int true "订单ID"
// @Success      200 {object} response.Response{data=[]order.OrderItemResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{orderId}/items [get]
func (h *OrderHandler) GetOrderItems(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}

	result, err := h.getOrderItemsUseCase.Execute(c.Request.Context(), apporder.GetOrderItemsRequest{
		UserID:  middleware.MustGetUserID(c),
		OrderID: orderID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetOrderItem 单条订单明细
// @Summary      单条订单明细
// @Description  明细不属于路径中的订单时返回404
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        orderId path int true "订单ID"
// @Param        itemId  path int true "订单明细ID"
// @Success      200 {object} response.Response{data=order.OrderItemResponse}
// @Failure      404 {object} response.Response "订单或明细不存在，或明细不属于该订单"
// @Router       /api/v1/orders/{orderId}/items/{itemId} [get]
func (h *OrderHandler) GetOrderItem(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	result, err := h.getOrderItemUseCase.Execute(c.Request.Context(), apporder.GetOrderItemRequest{
		UserID:  middleware.MustGetUserID(c),
		OrderID: orderID,
		ItemID:  itemID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateOrderStatus 修改订单状态
// @Summary      修改订单状态
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orderId path int                          true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "新状态"
// @Success      200 {object} response.Response{data=order.OrderResponse}
// @Failure      400 {object} response.Response "状态值非法"
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{orderId} [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.updateStatusUseCase.Execute(c.Request.Context(), apporder.UpdateOrderStatusRequest{
		OrderID: orderID,
		Status:  req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
