package cart

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// AddCartItemUseCase 加入购物车用例
type AddCartItemUseCase struct {
	loader cartLoader
	log    *zap.Logger
}

// NewAddCartItemUseCase 创建加入购物车用例
func NewAddCartItemUseCase(cartRepo cart.Repository, bookRepo book.Repository, log *zap.Logger) *AddCartItemUseCase {
	return &AddCartItemUseCase{
		loader: cartLoader{cartRepo: cartRepo, bookRepo: bookRepo},
		log:    log,
	}
}

// AddCartItemRequest 加入购物车请求DTO
type AddCartItemRequest struct {
	UserID   uint
	BookID   uint
	Quantity int
}

// Execute 加入购物车
// 1. 数量必须大于0
// 2. 图书必须存在
// 3. 同一本书已在购物车中则数量累加(数据库原子操作，并发加购不丢数量)
func (uc *AddCartItemUseCase) Execute(ctx context.Context, req AddCartItemRequest) (*CartResponse, error) {
	if err := cart.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if _, err := uc.loader.bookRepo.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	c, err := uc.loader.getOrCreate(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := uc.loader.cartRepo.AddItem(ctx, c.ID, req.BookID, req.Quantity); err != nil {
		return nil, err
	}

	metrics.AddCounter(metrics.CartItemsAddedTotal, float64(req.Quantity))
	uc.log.Debug("加入购物车",
		zap.Uint("user_id", req.UserID),
		zap.Uint("book_id", req.BookID),
		zap.Int("quantity", req.Quantity),
	)
	return uc.loader.reload(ctx, req.UserID)
}
