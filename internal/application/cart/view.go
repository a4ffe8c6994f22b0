package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// CartResponse 购物车DTO
type CartResponse struct {
	ID            uint               `json:"id"`
	UserID        uint               `json:"user_id"`
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int                `json:"total_quantity"`
}

// CartItemResponse 购物车明细DTO
type CartItemResponse struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"` // 图书已删除时为空
	Quantity  int    `json:"quantity"`
}

// cartLoader 购物车读取与视图组装，供各购物车用例共用
type cartLoader struct {
	cartRepo cart.Repository
	bookRepo book.Repository
}

// getOrCreate 获取用户购物车，不存在时创建
// 并发首次访问时只有一个请求能创建成功，其余请求重新读取
func (l *cartLoader) getOrCreate(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	c, err := l.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, cart.ErrCartNotFound) {
		return nil, err
	}

	c = cart.NewShoppingCart(userID)
	if err := l.cartRepo.Create(ctx, c); err != nil {
		if errors.Is(err, cart.ErrCartAlreadyExists) {
			return l.cartRepo.FindByUserID(ctx, userID)
		}
		return nil, err
	}
	return c, nil
}

// view 组装购物车视图，书名一次批量查询
func (l *cartLoader) view(ctx context.Context, c *cart.ShoppingCart) (*CartResponse, error) {
	books, err := l.bookRepo.FindByIDs(ctx, c.BookIDs())
	if err != nil {
		return nil, err
	}

	items := make([]CartItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = CartItemResponse{
			ID:       item.ID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
		}
		if b, ok := books[item.BookID]; ok {
			items[i].BookTitle = b.Title
		}
	}

	return &CartResponse{
		ID:            c.ID,
		UserID:        c.UserID,
		Items:         items,
		TotalQuantity: c.TotalQuantity(),
	}, nil
}

// reload 重新读取购物车并组装视图
func (l *cartLoader) reload(ctx context.Context, userID uint) (*CartResponse, error) {
	c, err := l.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return l.view(ctx, c)
}
