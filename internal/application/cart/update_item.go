package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// UpdateCartItemUseCase 修改购物车明细数量
type UpdateCartItemUseCase struct {
	loader cartLoader
}

// NewUpdateCartItemUseCase 创建修改数量用例
func NewUpdateCartItemUseCase(cartRepo cart.Repository, bookRepo book.Repository) *UpdateCartItemUseCase {
	return &UpdateCartItemUseCase{loader: cartLoader{cartRepo: cartRepo, bookRepo: bookRepo}}
}

// UpdateCartItemRequest 修改数量请求DTO
type UpdateCartItemRequest struct {
	UserID     uint
	CartItemID uint
	Quantity   int
}

// Execute 修改数量，明细必须在当前用户的购物车中
func (uc *UpdateCartItemUseCase) Execute(ctx context.Context, req UpdateCartItemRequest) (*CartResponse, error) {
	if err := cart.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	item, err := findOwnItem(ctx, uc.loader.cartRepo, req.UserID, req.CartItemID)
	if err != nil {
		return nil, err
	}
	if err := item.ChangeQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := uc.loader.cartRepo.UpdateItemQuantity(ctx, item.CartID, item.ID, item.Quantity); err != nil {
		return nil, err
	}
	return uc.loader.reload(ctx, req.UserID)
}

// findOwnItem 在当前用户的购物车中查找明细
// 没有购物车或明细属于别人的购物车都返回ErrCartItemNotFound
func findOwnItem(ctx context.Context, repo cart.Repository, userID, itemID uint) (*cart.CartItem, error) {
	c, err := repo.FindByUserID(ctx, userID)
	if errors.Is(err, cart.ErrCartNotFound) {
		return nil, cart.ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	item, ok := c.FindItem(itemID)
	if !ok {
		return nil, cart.ErrCartItemNotFound
	}
	return item, nil
}
