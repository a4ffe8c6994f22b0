package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/category"
)

// UpdateBookUseCase 更新图书用例，成功后删除缓存
type UpdateBookUseCase struct {
	bookService     book.Service
	categoryService category.Service
	cache           Cache
	log             *zap.Logger
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service, categoryService category.Service, cache Cache, log *zap.Logger) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService:     bookService,
		categoryService: categoryService,
		cache:           cache,
		log:             log,
	}
}

func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, req BookRequest) (*BookResponse, error) {
	if err := uc.categoryService.EnsureExist(ctx, req.CategoryIDs); err != nil {
		return nil, err
	}

	b, err := uc.bookService.UpdateBook(ctx, id, req.command())
	if err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, uc.log, id)
	return toBookResponse(b), nil
}

// DeleteBookUseCase 删除图书用例，成功后删除缓存
type DeleteBookUseCase struct {
	bookService book.Service
	cache       Cache
	log         *zap.Logger
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(bookService book.Service, cache Cache, log *zap.Logger) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		cache:       cache,
		log:         log,
	}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, uc.log, id)
	return nil
}

// invalidate 删除缓存失败时只记录日志，缓存会在TTL到期后自然失效
func invalidate(ctx context.Context, cache Cache, log *zap.Logger, id uint) {
	if cache == nil {
		return
	}
	if err := cache.Delete(ctx, id); err != nil {
		log.Warn("删除图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
}
