package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/specification"
)

// bookRepository 图书仓储实现(MySQL)
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN重复)，转换为业务错误
type bookRepository struct {
	db      *gorm.DB
	builder *specification.Builder
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB, builder *specification.Builder) book.Repository {
	return &bookRepository{db: db, builder: builder}
}

// Create 创建图书，同时写入分类关联
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	err := dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return replaceBookCategories(tx, model.ID, b.CategoryIDs)
	})
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	db := dbFromContext(ctx, r.db)

	var model BookModel
	if err := db.First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	books, err := r.attachCategories(db, []BookModel{model})
	if err != nil {
		return nil, err
	}
	return books[0], nil
}

// FindByIDs 批量查询图书(一条SQL)
func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	ids = uniqueIDs(ids)
	result := make(map[uint]*book.Book, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var models []BookModel
	if err := dbFromContext(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询图书失败")
	}
	for i := range models {
		result[models[i].ID] = toBookEntity(&models[i], nil)
	}
	return result, nil
}

// Update 更新图书信息，同时替换分类关联
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	err := dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&BookModel{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
			"title":       model.Title,
			"author":      model.Author,
			"isbn":        model.ISBN,
			"price":       model.Price,
			"description": model.Description,
			"cover_image": model.CoverImage,
			"updated_at":  b.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return replaceBookCategories(tx, b.ID, b.CategoryIDs)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}
	return nil
}

// Delete 删除图书(软删除)，分类关联一并删除
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	err := dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&BookModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return tx.Where("book_id = ?", id).Delete(&BookCategoryModel{}).Error
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.Wrap(err, "删除图书失败")
	}
	return nil
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return r.page(ctx, specification.And(), params)
}

// Search 按搜索条件分页查询
// 所有条件组合成一个Scope，COUNT和分页查询共用
func (r *bookRepository) Search(ctx context.Context, filters book.SearchFilters, params book.ListParams) ([]*book.Book, int64, error) {
	spec, err := r.builder.Build(filters)
	if err != nil {
		return nil, 0, err
	}
	return r.page(ctx, spec, params)
}

// ListByCategory 查询某分类下的图书
func (r *bookRepository) ListByCategory(ctx context.Context, categoryID uint, params book.ListParams) ([]*book.Book, int64, error) {
	spec := func(db *gorm.DB) *gorm.DB {
		return db.Where("books.id IN (SELECT book_id FROM book_categories WHERE category_id = ?)", categoryID)
	}
	return r.page(ctx, spec, params)
}

// page 条件 + 排序 + 分页
func (r *bookRepository) page(ctx context.Context, spec specification.Specification, params book.ListParams) ([]*book.Book, int64, error) {
	params = params.Normalize()
	db := dbFromContext(ctx, r.db)

	var total int64
	if err := db.Model(&BookModel{}).Scopes(spec).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}
	if total == 0 {
		return []*book.Book{}, 0, nil
	}

	var models []BookModel
	err := db.Model(&BookModel{}).
		Scopes(spec, orderBooks(params.SortBy)).
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books, err := r.attachCategories(db, models)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// orderBooks 排序，最后按id保证分页稳定
func orderBooks(sortBy string) specification.Specification {
	return func(db *gorm.DB) *gorm.DB {
		switch sortBy {
		case book.SortPriceAsc:
			db = db.Order("books.price ASC")
		case book.SortPriceDesc:
			db = db.Order("books.price DESC")
		case book.SortCreatedDesc:
			db = db.Order("books.created_at DESC")
		default:
			db = db.Order("books.title ASC").Order("books.author ASC")
		}
		return db.Order("books.id ASC")
	}
}

// attachCategories 批量加载分类ID(一条SQL，避免N+1)
func (r *bookRepository) attachCategories(db *gorm.DB, models []BookModel) ([]*book.Book, error) {
	ids := make([]uint, len(models))
	for i := range models {
		ids[i] = models[i].ID
	}

	var links []BookCategoryModel
	if len(ids) > 0 {
		err := db.Where("book_id IN ?", ids).Order("category_id ASC").Find(&links).Error
		if err != nil {
			return nil, apperrors.Wrap(err, "查询图书分类失败")
		}
	}

	categoryIDs := make(map[uint][]uint, len(models))
	for _, link := range links {
		categoryIDs[link.BookID] = append(categoryIDs[link.BookID], link.CategoryID)
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i], categoryIDs[models[i].ID])
	}
	return books, nil
}

// replaceBookCategories 用给定分类替换图书的全部分类关联
func replaceBookCategories(tx *gorm.DB, bookID uint, categoryIDs []uint) error {
	if err := tx.Where("book_id = ?", bookID).Delete(&BookCategoryModel{}).Error; err != nil {
		return err
	}
	categoryIDs = uniqueIDs(categoryIDs)
	if len(categoryIDs) == 0 {
		return nil
	}

	now := time.Now()
	links := make([]BookCategoryModel, len(categoryIDs))
	for i, id := range categoryIDs {
		links[i] = BookCategoryModel{BookID: bookID, CategoryID: id, CreatedAt: now}
	}
	return tx.Create(&links).Error
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price,
		Description: b.Description,
		CoverImage:  b.CoverImage,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel, categoryIDs []uint) *book.Book {
	if categoryIDs == nil {
		categoryIDs = []uint{}
	}
	return &book.Book{
		ID:          model.ID,
		Title:       model.Title,
		Author:      model.Author,
		ISBN:        model.ISBN,
		Price:       model.Price,
		Description: model.Description,
		CoverImage:  model.CoverImage,
		CategoryIDs: categoryIDs,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
