package book

import (
	"context"
	"strings"
)

// Repository 图书仓储接口(依赖倒置原则)
// 由domain层定义，infrastructure层实现
type Repository interface {
	// Create 创建图书(同时写入分类关联)
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查询图书，不存在的ID直接忽略
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Book, error)

	// Update 更新图书信息(同时替换分类关联)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// Search 按搜索条件分页查询，所有条件在一条SQL中完成
	Search(ctx context.Context, filters SearchFilters, params ListParams) ([]*Book, int64, error)

	// ListByCategory 查询某分类下的图书(分类的反向查询)
	ListByCategory(ctx context.Context, categoryID uint, params ListParams) ([]*Book, int64, error)
}

// 排序方式
const (
	SortTitleAsc    = "title_asc" // 默认：书名、作者升序
	SortPriceAsc    = "price_asc"
	SortPriceDesc   = "price_desc"
	SortCreatedDesc = "created_at_desc"
)

// 分页默认值
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListParams 分页查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	SortBy   string // 排序方式
}

// Normalize 填充默认值并限制范围
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	switch p.SortBy {
	case SortTitleAsc, SortPriceAsc, SortPriceDesc, SortCreatedDesc:
	default:
		p.SortBy = SortTitleAsc
	}
	return p
}

// Offset 分页偏移量
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// =========================================
// 搜索条件
// =========================================

// 可搜索字段
const (
	FieldTitle    = "title"
	FieldAuthor   = "author"
	FieldISBN     = "isbn"
	FieldCategory = "category_id"
)

// SearchableFields 所有可搜索字段，启动时校验每个字段都注册了条件提供者
var SearchableFields = []string{FieldTitle, FieldAuthor, FieldISBN, FieldCategory}

// SearchFilters 搜索条件：字段名 → 可选值
// 不同字段之间AND，同一字段的多个值之间OR，空字段不产生约束
type SearchFilters map[string][]string

// IsEmpty 是否没有任何有效条件
func (f SearchFilters) IsEmpty() bool {
	for _, values := range f {
		for _, v := range values {
			if strings.TrimSpace(v) != "" {
				return false
			}
		}
	}
	return true
}
