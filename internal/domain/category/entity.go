package category

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 255
)

// Category 图书分类
// 与图书多对多，关联关系只保存在图书一侧（Book.CategoryIDs）
type Category struct {
	ID          uint
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory 创建分类
func NewCategory(name, description string) (*Category, error) {
	now := time.Now()
	c := &Category{
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename 更新名称和描述
func (c *Category) Rename(name, description string) error {
	updated := *c
	updated.Name = strings.TrimSpace(name)
	updated.Description = description
	if err := updated.validate(); err != nil {
		return err
	}
	updated.UpdatedAt = time.Now()
	*c = updated
	return nil
}

func (c *Category) validate() error {
	if c.Name == "" || utf8.RuneCountInString(c.Name) > MaxNameLength {
		return ErrInvalidName
	}
	if utf8.RuneCountInString(c.Description) > MaxDescriptionLength {
		return ErrInvalidDescription
	}
	return nil
}
