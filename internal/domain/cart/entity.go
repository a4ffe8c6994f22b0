package cart

import (
	"time"
)

// ShoppingCart 购物车(聚合根)
// 1. 每个用户一个购物车，第一次访问时创建
// 2. CartItem只能通过购物车访问，同一本书在购物车中最多一行
// 3. 软删除，下单后只清空明细，购物车本身保留复用
type ShoppingCart struct {
	ID        uint
	UserID    uint
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem 购物车明细
type CartItem struct {
	ID        uint
	CartID    uint
	BookID    uint
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewShoppingCart 创建空购物车
func NewShoppingCart(userID uint) *ShoppingCart {
	now := time.Now()
	return &ShoppingCart{
		UserID:    userID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidateQuantity 数量必须为正整数
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// IsEmpty 是否没有明细
func (c *ShoppingCart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem 按明细ID查找
func (c *ShoppingCart) FindItem(itemID uint) (*CartItem, bool) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// BookIDs 购物车中所有图书ID
func (c *ShoppingCart) BookIDs() []uint {
	ids := make([]uint, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.BookID)
	}
	return ids
}

// TotalQuantity 图书总件数
func (c *ShoppingCart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// ChangeQuantity 修改数量
func (i *CartItem) ChangeQuantity(quantity int) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	i.Quantity = quantity
	i.UpdatedAt = time.Now()
	return nil
}
