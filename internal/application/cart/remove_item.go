package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// RemoveCartItemUseCase 删除购物车明细
type RemoveCartItemUseCase struct {
	cartRepo cart.Repository
}

// NewRemoveCartItemUseCase 创建删除明细用例
func NewRemoveCartItemUseCase(cartRepo cart.Repository) *RemoveCartItemUseCase {
	return &RemoveCartItemUseCase{cartRepo: cartRepo}
}

// RemoveCartItemRequest 删除明细请求DTO
type RemoveCartItemRequest struct {
	UserID     uint
	CartItemID uint
}

// Execute 删除明细，不在当前用户购物车中返回ErrCartItemNotFound
func (uc *RemoveCartItemUseCase) Execute(ctx context.Context, req RemoveCartItemRequest) error {
	item, err := findOwnItem(ctx, uc.cartRepo, req.UserID, req.CartItemID)
	if err != nil {
		return err
	}
	return uc.cartRepo.DeleteItem(ctx, item.CartID, item.ID)
}
