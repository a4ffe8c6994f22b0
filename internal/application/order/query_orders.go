package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// 分页默认值
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListOrdersRequest 订单列表请求DTO
type ListOrdersRequest struct {
	UserID   uint
	Page     int
	PageSize int
}

// ListOrdersUseCase 我的订单(含明细)，按下单时间倒序
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单列表用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, req ListOrdersRequest) (*ListOrdersResponse, error) {
	// 1. 参数默认值与范围限制
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = DefaultPageSize
	}
	if req.PageSize > MaxPageSize {
		req.PageSize = MaxPageSize
	}

	// 2. 查询
	orders, total, err := uc.orderRepo.ListByUserID(ctx, req.UserID, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	// 3. 转换为DTO
	list := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		list[i] = toOrderResponse(o)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListOrdersResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetOrderItemsRequest 订单明细列表请求DTO
type GetOrderItemsRequest struct {
	UserID  uint
	OrderID uint
}

// GetOrderItemsUseCase 查询订单的全部明细
type GetOrderItemsUseCase struct {
	orderRepo order.Repository
}

// NewGetOrderItemsUseCase 创建订单明细列表用例
func NewGetOrderItemsUseCase(orderRepo order.Repository) *GetOrderItemsUseCase {
	return &GetOrderItemsUseCase{orderRepo: orderRepo}
}

func (uc *GetOrderItemsUseCase) Execute(ctx context.Context, req GetOrderItemsRequest) ([]OrderItemResponse, error) {
	if _, err := findOwnedOrder(ctx, uc.orderRepo, req.UserID, req.OrderID); err != nil {
		return nil, err
	}

	items, err := uc.orderRepo.ListItems(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	return toOrderItemResponses(items), nil
}

// GetOrderItemRequest 单条订单明细请求DTO
type GetOrderItemRequest struct {
	UserID  uint
	OrderID uint
	ItemID  uint
}

// GetOrderItemUseCase 查询订单中的一条明细
type GetOrderItemUseCase struct {
	orderRepo order.Repository
}

// NewGetOrderItemUseCase 创建单条明细用例
func NewGetOrderItemUseCase(orderRepo order.Repository) *GetOrderItemUseCase {
	return &GetOrderItemUseCase{orderRepo: orderRepo}
}

// Execute 明细存在但属于其他订单时返回ErrOrderItemNotInOrder
func (uc *GetOrderItemUseCase) Execute(ctx context.Context, req GetOrderItemRequest) (*OrderItemResponse, error) {
	if _, err := findOwnedOrder(ctx, uc.orderRepo, req.UserID, req.OrderID); err != nil {
		return nil, err
	}

	item, err := uc.orderRepo.FindItemByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OrderID != req.OrderID {
		return nil, order.ErrOrderItemNotInOrder
	}

	resp := toOrderItemResponse(*item)
	return &resp, nil
}

// findOwnedOrder 订单必须存在且属于当前用户
// 不属于当前用户时同样返回ErrOrderNotFound，不暴露订单是否存在
func findOwnedOrder(ctx context.Context, repo order.Repository, userID, orderID uint) (*order.Order, error) {
	o, err := repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}
