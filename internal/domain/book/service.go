package book

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service 图书领域服务接口
type Service interface {
	// PublishBook 上架图书，ISBN不能重复
	PublishBook(ctx context.Context, cmd BookCommand) (*Book, error)

	// GetBook 根据ID获取图书详情
	GetBook(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 整体更新图书信息
	UpdateBook(ctx context.Context, id uint, cmd BookCommand) (*Book, error)

	// DeleteBook 删除图书(软删除)
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// SearchBooks 按动态条件搜索图书
	SearchBooks(ctx context.Context, filters SearchFilters, params ListParams) ([]*Book, int64, error)

	// ListByCategory 查询分类下的图书
	ListByCategory(ctx context.Context, categoryID uint, params ListParams) ([]*Book, int64, error)
}

// BookCommand 创建/更新图书的参数
type BookCommand struct {
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) PublishBook(ctx context.Context, cmd BookCommand) (*Book, error) {
	b, err := NewBook(cmd.Title, cmd.Author, cmd.ISBN, cmd.Price, cmd.Description, cmd.CoverImage, cmd.CategoryIDs)
	if err != nil {
		return nil, err
	}

	// ISBN唯一性由数据库唯一索引保证，Repository把冲突转换为ErrISBNDuplicate
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateBook(ctx context.Context, id uint, cmd BookCommand) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.Update(cmd.Title, cmd.Author, cmd.ISBN, cmd.Price, cmd.Description, cmd.CoverImage, cmd.CategoryIDs); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) DeleteBook(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params.Normalize())
}

func (s *service) SearchBooks(ctx context.Context, filters SearchFilters, params ListParams) ([]*Book, int64, error) {
	return s.repo.Search(ctx, filters, params.Normalize())
}

func (s *service) ListByCategory(ctx context.Context, categoryID uint, params ListParams) ([]*Book, int64, error) {
	return s.repo.ListByCategory(ctx, categoryID, params.Normalize())
}
