package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CartHandler 购物车HTTP处理器，所有接口只操作当前登录用户的购物车
type CartHandler struct {
	getCartUseCase    *appcart.GetCartUseCase
	addItemUseCase    *appcart.AddCartItemUseCase
	updateItemUseCase *appcart.UpdateCartItemUseCase
	removeItemUseCase *appcart.RemoveCartItemUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(
	getCartUseCase *appcart.GetCartUseCase,
	addItemUseCase *appcart.AddCartItemUseCase,
	updateItemUseCase *appcart.UpdateCartItemUseCase,
	removeItemUseCase *appcart.RemoveCartItemUseCase,
) *CartHandler {
	return &CartHandler{
		getCartUseCase:    getCartUseCase,
		addItemUseCase:    addItemUseCase,
		updateItemUseCase: updateItemUseCase,
		removeItemUseCase: removeItemUseCase,
	}
}

// GetCart 查看购物车
// @Summary      查看购物车
// @Description  第一次访问时自动创建空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=cart.CartResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	result, err := h.getCartUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  同一本书重复加入时数量累加
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "图书和数量"
// @Success      200 {object} response.Response{data=cart.CartResponse}
// @Failure      400 {object} response.Response "数量必须大于0"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/cart [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.addItemUseCase.Execute(c.Request.Context(), appcart.AddCartItemRequest{
		UserID:   middleware.MustGetUserID(c),
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateItem 修改购物车明细数量
// @Summary      修改数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemId  path int                       true "购物车明细ID"
// @Param        request body dto.UpdateCartItemRequest true "新数量"
// @Success      200 {object} response.Response{data=cart.CartResponse}
// @Failure      404 {object} response.Response "明细不存在"
// @Router       /api/v1/cart/items/{itemId} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.updateItemUseCase.Execute(c.Request.Context(), appcart.UpdateCartItemRequest{
		UserID:     middleware.MustGetUserID(c),
		CartItemID: itemID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RemoveItem 移除购物车明细
// @Summary      移除明细
// @Tags         购物车
// @Security     BearerAuth
// @Param        itemId path int true "购物车明细ID"
// @Success      204
// @Failure      404 {object} response.Response "明细不存在"
// @Router       /api/v1/cart/items/{itemId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	err := h.removeItemUseCase.Execute(c.Request.Context(), appcart.RemoveCartItemRequest{
		UserID:     middleware.MustGetUserID(c),
		CartItemID: itemID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
