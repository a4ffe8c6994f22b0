package book

import (
	"github.com/xiebiao/bookshop/internal/domain/book"
)

const timeLayout = "2006-01-02 15:04:05"

// BookResponse 图书详情DTO
type BookResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Price       string `json:"price"` // 两位小数，如"9.99"
	Description string `json:"description"`
	CoverImage  string `json:"cover_image"`
	CategoryIDs []uint `json:"category_ids"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// BookListItem 列表项DTO(不含description，减少数据传输量)
type BookListItem struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Price       string `json:"price"`
	CoverImage  string `json:"cover_image"`
	CategoryIDs []uint `json:"category_ids"`
}

// ListBooksResponse 分页列表DTO
type ListBooksResponse struct {
	List       []BookListItem `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price.StringFixed(2),
		Description: b.Description,
		CoverImage:  b.CoverImage,
		CategoryIDs: nonNilIDs(b.CategoryIDs),
		CreatedAt:   b.CreatedAt.Format(timeLayout),
		UpdatedAt:   b.UpdatedAt.Format(timeLayout),
	}
}

func toListResponse(books []*book.Book, total int64, params book.ListParams) *ListBooksResponse {
	list := make([]BookListItem, len(books))
	for i, b := range books {
		list[i] = BookListItem{
			ID:          b.ID,
			Title:       b.Title,
			Author:      b.Author,
			ISBN:        b.ISBN,
			Price:       b.Price.StringFixed(2),
			CoverImage:  b.CoverImage,
			CategoryIDs: nonNilIDs(b.CategoryIDs),
		}
	}

	totalPages := int(total) / params.PageSize
	if int(total)%params.PageSize != 0 {
		totalPages++
	}

	return &ListBooksResponse{
		List:       list,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}
}

func nonNilIDs(ids []uint) []uint {
	if ids == nil {
		return []uint{}
	}
	return ids
}
