package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// Cache 图书详情缓存(由redis.BookCache实现)
// 未启用缓存时传nil
type Cache interface {
	Get(ctx context.Context, id uint) (*book.Book, bool, error)
	Set(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, id uint) error
}
