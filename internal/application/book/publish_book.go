package book

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/category"
)

// PublishBookUseCase 图书上架用例
// 1. 应用层负责用例编排，协调领域服务完成业务流程
// 2. 输入输出使用DTO，与HTTP层解耦
type PublishBookUseCase struct {
	bookService     book.Service
	categoryService category.Service
}

// NewPublishBookUseCase 创建上架用例
func NewPublishBookUseCase(bookService book.Service, categoryService category.Service) *PublishBookUseCase {
	return &PublishBookUseCase{
		bookService:     bookService,
		categoryService: categoryService,
	}
}

// BookRequest 上架/更新请求DTO
type BookRequest struct {
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint
}

func (r BookRequest) command() book.BookCommand {
	return book.BookCommand{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		Price:       r.Price,
		Description: r.Description,
		CoverImage:  r.CoverImage,
		CategoryIDs: r.CategoryIDs,
	}
}

// Execute 执行上架用例
// 1. 校验分类都存在
// 2. 领域服务校验业务规则并持久化(ISBN重复由唯一索引保证)
func (uc *PublishBookUseCase) Execute(ctx context.Context, req BookRequest) (*BookResponse, error) {
	if err := uc.categoryService.EnsureExist(ctx, req.CategoryIDs); err != nil {
		return nil, err
	}

	b, err := uc.bookService.PublishBook(ctx, req.command())
	if err != nil {
		return nil, err
	}
	return toBookResponse(b), nil
}
