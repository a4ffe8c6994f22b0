package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// 明细的增删改都带cart_id条件，只能操作自己购物车中的明细
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	return r.findByUserID(dbFromContext(ctx, r.db), userID)
}

// LockByUserID SELECT ... FOR UPDATE锁定购物车行
// 同一购物车的并发下单在这里串行，后到的事务看到的是已清空的购物车
func (r *cartRepository) LockByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	db := dbFromContext(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.findByUserID(db, userID)
}

func (r *cartRepository) findByUserID(db *gorm.DB, userID uint) (*cart.ShoppingCart, error) {
	var model CartModel
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id ASC")
	}).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

// Create 创建购物车
// user_id唯一索引保证并发首次访问只会创建一个
func (r *cartRepository) Create(ctx context.Context, c *cart.ShoppingCart) error {
	model := &CartModel{UserID: c.UserID}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return cart.ErrCartAlreadyExists
		}
		return apperrors.Wrap(err, "创建购物车失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// AddItem 加入图书(原子操作)
// INSERT ... ON DUPLICATE KEY UPDATE quantity = quantity + ?
func (r *cartRepository) AddItem(ctx context.Context, cartID, bookID uint, quantity int) error {
	now := time.Now()
	item := &CartItemModel{
		CartID:    cartID,
		BookID:    bookID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := dbFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "book_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", quantity),
			"updated_at": now,
		}),
	}).Create(item).Error
	if err != nil {
		return apperrors.Wrap(err, "加入购物车失败")
	}
	return nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) error {
	result := dbFromContext(ctx, r.db).Model(&CartItemModel{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "修改购物车明细失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, itemID uint) error {
	result := dbFromContext(ctx, r.db).Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&CartItemModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车明细失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) ClearItems(ctx context.Context, cartID uint) error {
	if err := dbFromContext(ctx, r.db).Where("cart_id = ?", cartID).Delete(&CartItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toCartEntity(model *CartModel) *cart.ShoppingCart {
	items := make([]cart.CartItem, len(model.Items))
	for i := range model.Items {
		items[i] = toCartItemEntity(&model.Items[i])
	}
	return &cart.ShoppingCart{
		ID:        model.ID,
		UserID:    model.UserID,
		Items:     items,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toCartItemEntity(model *CartItemModel) cart.CartItem {
	return cart.CartItem{
		ID:        model.ID,
		CartID:    model.CartID,
		BookID:    model.BookID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
