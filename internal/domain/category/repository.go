package category

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	// FindByIDs 批量查询，不存在的ID直接忽略
	FindByIDs(ctx context.Context, ids []uint) ([]*Category, error)
	// List 全部分类，按名称排序
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	// Delete 软删除，同时解除与图书的关联
	Delete(ctx context.Context, id uint) error
}
