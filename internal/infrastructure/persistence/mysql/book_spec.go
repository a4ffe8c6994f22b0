package mysql

import (
	"strconv"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/pkg/specification"
	"github.com/xiebiao/bookshop/pkg/validator"
)

// NewBookSpecificationBuilder 注册图书的全部搜索字段
// 启动时校验book.SearchableFields都有对应的Provider，缺失直接返回错误
func NewBookSpecificationBuilder() (*specification.Builder, error) {
	manager, err := specification.NewManager(
		specification.In(book.FieldTitle, "books.title"),
		specification.In(book.FieldAuthor, "books.author"),
		isbnProvider(),
		categoryProvider(),
	)
	if err != nil {
		return nil, err
	}
	if err := manager.Require(book.SearchableFields...); err != nil {
		return nil, err
	}
	return specification.NewBuilder(manager), nil
}

// isbnProvider ISBN按规范化后的值匹配(978-0-441 → 9780441)
func isbnProvider() specification.Provider {
	return specification.NewProvider(book.FieldISBN, func(values []string) specification.Specification {
		normalized := make([]string, len(values))
		for i, v := range values {
			normalized[i] = validator.NormalizeISBN(v)
		}
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("books.isbn IN ?", normalized)
		}
	})
}

// categoryProvider 图书属于任意一个给定分类
// 非数字的分类ID忽略；全部无效时不匹配任何图书
func categoryProvider() specification.Provider {
	return specification.NewProvider(book.FieldCategory, func(values []string) specification.Specification {
		ids := make([]uint, 0, len(values))
		for _, v := range values {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil || id == 0 {
				continue
			}
			ids = append(ids, uint(id))
		}
		return func(db *gorm.DB) *gorm.DB {
			if len(ids) == 0 {
				return db.Where("1 = 0")
			}
			return db.Where("books.id IN (SELECT book_id FROM book_categories WHERE category_id IN ?)", ids)
		}
	})
}
