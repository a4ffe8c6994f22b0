package order

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在(或不属于当前用户)
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrOrderItemNotFound 订单明细不存在
	ErrOrderItemNotFound = apperrors.New(apperrors.ErrCodeOrderItemNotFound, "订单明细不存在")

	// ErrOrderItemNotInOrder 订单明细存在，但属于其他订单
	ErrOrderItemNotInOrder = apperrors.New(apperrors.ErrCodeOrderItemNotInOrder, "订单明细不属于该订单")

	// ErrEmptyCart 购物车为空，不能下单
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeEmptyCart, "购物车为空，无法下单")

	// ErrEmptyOrder 订单明细不能为空
	ErrEmptyOrder = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrInvalidStatus 订单状态不合法
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "订单状态不合法")

	// ErrInvalidShippingAddress 收货地址不合法
	ErrInvalidShippingAddress = apperrors.New(apperrors.ErrCodeInvalidParams, "收货地址不能为空且不超过255个字符")

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")

	// ErrInvalidPrice 单价不合法
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "单价必须大于0")

	// ErrTotalTooLarge 订单总金额超出decimal(10,2)的范围
	ErrTotalTooLarge = apperrors.New(apperrors.ErrCodeInvalidParams, "订单总金额不能超过99999999.99")
)
