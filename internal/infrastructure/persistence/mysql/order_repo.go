package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/order"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 1. Order和OrderItem是聚合关系，必须一起保存
// 2. 查询时使用Preload预加载明细，避免N+1问题
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单
// GORM在同一次Create中保存关联的Items，调用方应处于事务中
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	// 回填自增ID
	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查找订单(含明细)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := dbFromContext(ctx, r.db).Preload("Items", orderItemsByID).First(&model, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// ListByUserID 查询用户的订单列表
// 按创建时间倒序，时间相同时按id倒序，保证分页稳定
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	db := dbFromContext(ctx, r.db)

	var total int64
	if err := db.Model(&OrderModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}
	if total == 0 {
		return []*order.Order{}, 0, nil
	}

	var models []OrderModel
	err := db.Where("user_id = ?", userID).
		Preload("Items", orderItemsByID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// UpdateStatus 只更新Status和UpdatedAt
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status order.OrderStatus, updatedAt time.Time) error {
	result := dbFromContext(ctx, r.db).Model(&OrderModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     string(status),
		"updated_at": updatedAt,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单状态失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) ListItems(ctx context.Context, orderID uint) ([]order.OrderItem, error) {
	var models []OrderItemModel
	err := dbFromContext(ctx, r.db).Where("order_id = ?", orderID).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单明细失败")
	}
	return toOrderItemEntities(models), nil
}

func (r *orderRepository) FindItemByID(ctx context.Context, itemID uint) (*order.OrderItem, error) {
	var model OrderItemModel
	if err := dbFromContext(ctx, r.db).First(&model, itemID).Error; err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单明细失败")
	}
	item := toOrderItemEntity(&model)
	return &item, nil
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id ASC")
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			ID:       item.ID,
			OrderID:  item.OrderID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	return &OrderModel{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		ShippingAddress: o.ShippingAddress,
		Total:           o.Total,
		Status:          string(o.Status),
		OrderDate:       o.OrderDate,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	return &order.Order{
		ID:              model.ID,
		OrderNo:         model.OrderNo,
		UserID:          model.UserID,
		ShippingAddress: model.ShippingAddress,
		Total:           model.Total,
		Status:          order.OrderStatus(model.Status),
		OrderDate:       model.OrderDate,
		Items:           toOrderItemEntities(model.Items),
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func toOrderItemEntities(models []OrderItemModel) []order.OrderItem {
	items := make([]order.OrderItem, len(models))
	for i := range models {
		items[i] = toOrderItemEntity(&models[i])
	}
	return items
}

func toOrderItemEntity(model *OrderItemModel) order.OrderItem {
	return order.OrderItem{
		ID:       model.ID,
		OrderID:  model.OrderID,
		BookID:   model.BookID,
		Quantity: model.Quantity,
		Price:    model.Price,
	}
}
