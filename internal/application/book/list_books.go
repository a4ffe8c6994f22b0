package book

import (
	"context"
	"strconv"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/category"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	SortBy   string // 排序方式(title_asc, price_asc, price_desc, created_at_desc)
}

func (r ListBooksRequest) params() book.ListParams {
	return book.ListParams{Page: r.Page, PageSize: r.PageSize, SortBy: r.SortBy}.Normalize()
}

// ListBooksUseCase 图书列表查询用例
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	params := req.params()
	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}
	return toListResponse(books, total, params), nil
}

// SearchBooksRequest 搜索请求DTO
// Filters: 字段名 → 可选值，字段之间AND，同一字段的值之间OR
type SearchBooksRequest struct {
	ListBooksRequest
	Filters book.SearchFilters
}

// SearchBooksUseCase 图书动态搜索用例
type SearchBooksUseCase struct {
	bookService book.Service
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) (*ListBooksResponse, error) {
	params := req.params()
	metrics.IncCounterVec(metrics.BookSearchesTotal, map[string]string{
		"filtered": strconv.FormatBool(!req.Filters.IsEmpty()),
	})

	books, total, err := uc.bookService.SearchBooks(ctx, req.Filters, params)
	if err != nil {
		return nil, err
	}
	return toListResponse(books, total, params), nil
}

// ListCategoryBooksUseCase 查询分类下的图书
type ListCategoryBooksUseCase struct {
	bookService     book.Service
	categoryService category.Service
}

// NewListCategoryBooksUseCase 创建分类图书查询用例
func NewListCategoryBooksUseCase(bookService book.Service, categoryService category.Service) *ListCategoryBooksUseCase {
	return &ListCategoryBooksUseCase{
		bookService:     bookService,
		categoryService: categoryService,
	}
}

func (uc *ListCategoryBooksUseCase) Execute(ctx context.Context, categoryID uint, req ListBooksRequest) (*ListBooksResponse, error) {
	if _, err := uc.categoryService.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	params := req.params()
	books, total, err := uc.bookService.ListByCategory(ctx, categoryID, params)
	if err != nil {
		return nil, err
	}
	return toListResponse(books, total, params), nil
}
