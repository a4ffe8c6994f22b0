package book

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookshop/pkg/validator"
)

// 字段长度限制
const (
	MaxTitleLength       = 255
	MaxAuthorLength      = 255
	MaxISBNLength        = 13
	MaxDescriptionLength = 1000
	MaxCoverImageLength  = 255
)

// MaxPrice 价格上限，对应decimal(10,2)
var MaxPrice = decimal.RequireFromString("99999999.99")

// Book 图书实体(聚合根)
// 1. 价格使用decimal，保留两位小数，避免浮点误差
// 2. ISBN规范化后存储（去掉连字符），最长13位
// 3. 与分类是多对多关系，实体里只保存分类ID，反向查询走Repository
type Book struct {
	ID          uint
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书(工厂方法)，校验所有业务规则
func NewBook(title, author, isbn string, price decimal.Decimal, description, coverImage string, categoryIDs []uint) (*Book, error) {
	now := time.Now()
	b := &Book{
		Title:       strings.TrimSpace(title),
		Author:      strings.TrimSpace(author),
		ISBN:        validator.NormalizeISBN(isbn),
		Price:       price.Round(2),
		Description: description,
		CoverImage:  coverImage,
		CategoryIDs: uniqueIDs(categoryIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate 校验图书的业务不变量
// 长度按字符数计算，与varchar(n)一致
func (b *Book) Validate() error {
	if b.Title == "" || utf8.RuneCountInString(b.Title) > MaxTitleLength {
		return ErrInvalidTitle
	}
	if b.Author == "" || utf8.RuneCountInString(b.Author) > MaxAuthorLength {
		return ErrInvalidAuthor
	}
	if b.ISBN == "" || len(b.ISBN) > MaxISBNLength || !validator.IsISBN(b.ISBN) {
		return ErrInvalidISBN
	}
	if !b.Price.IsPositive() || b.Price.GreaterThan(MaxPrice) {
		return ErrInvalidPrice
	}
	if utf8.RuneCountInString(b.Description) > MaxDescriptionLength {
		return ErrInvalidDescription
	}
	if utf8.RuneCountInString(b.CoverImage) > MaxCoverImageLength {
		return ErrInvalidCoverImage
	}
	return nil
}

// Update 整体更新图书信息(PUT语义)
func (b *Book) Update(title, author, isbn string, price decimal.Decimal, description, coverImage string, categoryIDs []uint) error {
	updated := *b
	updated.Title = strings.TrimSpace(title)
	updated.Author = strings.TrimSpace(author)
	updated.ISBN = validator.NormalizeISBN(isbn)
	updated.Price = price.Round(2)
	updated.Description = description
	updated.CoverImage = coverImage
	updated.CategoryIDs = uniqueIDs(categoryIDs)
	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now()
	*b = updated
	return nil
}

// uniqueIDs 去重并去掉0，保持原顺序
func uniqueIDs(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
