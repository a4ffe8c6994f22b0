package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// GetBookUseCase 图书详情用例(Cache-Aside)
// 缓存故障只记录日志，降级为直接查数据库
type GetBookUseCase struct {
	bookService book.Service
	cache       Cache
	log         *zap.Logger
}

// NewGetBookUseCase 创建图书详情用例，cache可以为nil
func NewGetBookUseCase(bookService book.Service, cache Cache, log *zap.Logger) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		cache:       cache,
		log:         log,
	}
}

func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookResponse, error) {
	// 1. 查缓存
	if uc.cache != nil {
		cached, hit, err := uc.cache.Get(ctx, id)
		if err != nil {
			uc.log.Warn("读取图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
		}
		if hit {
			return toBookResponse(cached), nil
		}
	}

	// 2. 查数据库
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 回填缓存
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, b); err != nil {
			uc.log.Warn("写入图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
		}
	}
	return toBookResponse(b), nil
}
