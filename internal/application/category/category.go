package category

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/category"
)

// CategoryResponse 分类DTO
type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryRequest 创建/更新分类请求DTO
type CategoryRequest struct {
	Name        string
	Description string
}

func toCategoryResponse(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

// CreateCategoryUseCase 创建分类
type CreateCategoryUseCase struct {
	categoryService category.Service
}

func NewCreateCategoryUseCase(categoryService category.Service) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryService: categoryService}
}

func (uc *CreateCategoryUseCase) Execute(ctx context.Context, req CategoryRequest) (*CategoryResponse, error) {
	c, err := uc.categoryService.CreateCategory(ctx, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// GetCategoryUseCase 分类详情
type GetCategoryUseCase struct {
	categoryService category.Service
}

func NewGetCategoryUseCase(categoryService category.Service) *GetCategoryUseCase {
	return &GetCategoryUseCase{categoryService: categoryService}
}

func (uc *GetCategoryUseCase) Execute(ctx context.Context, id uint) (*CategoryResponse, error) {
	c, err := uc.categoryService.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// ListCategoriesUseCase 全部分类(按名称排序)
type ListCategoriesUseCase struct {
	categoryService category.Service
}

func NewListCategoriesUseCase(categoryService category.Service) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryService: categoryService}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]*CategoryResponse, error) {
	categories, err := uc.categoryService.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		list[i] = toCategoryResponse(c)
	}
	return list, nil
}

// UpdateCategoryUseCase 修改分类名称和描述
type UpdateCategoryUseCase struct {
	categoryService category.Service
}

func NewUpdateCategoryUseCase(categoryService category.Service) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{categoryService: categoryService}
}

func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, id uint, req CategoryRequest) (*CategoryResponse, error) {
	c, err := uc.categoryService.UpdateCategory(ctx, id, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// DeleteCategoryUseCase 删除分类(图书保留，只解除关联)
type DeleteCategoryUseCase struct {
	categoryService category.Service
}

func NewDeleteCategoryUseCase(categoryService category.Service) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{categoryService: categoryService}
}

func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, id uint) error {
	return uc.categoryService.DeleteCategory(ctx, id)
}
