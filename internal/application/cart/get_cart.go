package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// GetCartUseCase 查看购物车，第一次访问时创建空购物车
type GetCartUseCase struct {
	loader cartLoader
}

// NewGetCartUseCase 创建查看购物车用例
func NewGetCartUseCase(cartRepo cart.Repository, bookRepo book.Repository) *GetCartUseCase {
	return &GetCartUseCase{loader: cartLoader{cartRepo: cartRepo, bookRepo: bookRepo}}
}

func (uc *GetCartUseCase) Execute(ctx context.Context, userID uint) (*CartResponse, error) {
	c, err := uc.loader.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.loader.view(ctx, c)
}
