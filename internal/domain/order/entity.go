package order

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// OrderStatus 订单状态
// 使用字符串存储和传输，新增状态不影响已有数据
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"    // 待处理(创建时的初始状态)
	StatusProcessing OrderStatus = "PROCESSING" // 处理中
	StatusShipped    OrderStatus = "SHIPPED"    // 已发货
	StatusDelivered  OrderStatus = "DELIVERED"  // 已送达
	StatusCompleted  OrderStatus = "COMPLETED"  // 已完成
	StatusCancelled  OrderStatus = "CANCELLED"  // 已取消
)

var statusLabels = map[OrderStatus]string{
	StatusPending:    "待处理",
	StatusProcessing: "处理中",
	StatusShipped:    "已发货",
	StatusDelivered:  "已送达",
	StatusCompleted:  "已完成",
	StatusCancelled:  "已取消",
}

// ParseStatus 解析状态字符串(忽略大小写和首尾空白)
func ParseStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// IsValid 是否为已定义的状态
func (s OrderStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label 中文名称(日志、后台展示用)
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "未知状态"
}

func (s OrderStatus) String() string {
	return string(s)
}

// MaxShippingAddressLength 收货地址最大长度
const MaxShippingAddressLength = 255

// MaxAmount 单价和总金额上限，对应decimal(10,2)
var MaxAmount = decimal.RequireFromString("99999999.99")

// Order 订单实体(聚合根)
// 创建后只有Status可以修改，Total和明细都是下单时的快照
type Order struct {
	ID              uint
	OrderNo         string
	UserID          uint
	ShippingAddress string
	Total           decimal.Decimal
	Status          OrderStatus
	OrderDate       time.Time
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem 订单明细
// Price是下单时的单价，之后图书改价不影响历史订单
type OrderItem struct {
	ID       uint
	OrderID  uint
	BookID   uint
	Quantity int
	Price    decimal.Decimal
}

// Subtotal 小计 = 单价 × 数量
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder 创建新订单(工厂方法)
// 总金额由明细计算，初始状态为PENDING
func NewOrder(orderNo string, userID uint, shippingAddress string, items []OrderItem) (*Order, error) {
	address, err := NormalizeShippingAddress(shippingAddress)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if !item.Price.IsPositive() || item.Price.GreaterThan(MaxAmount) {
			return nil, ErrInvalidPrice
		}
	}
	total := CalculateTotal(items)
	if total.GreaterThan(MaxAmount) {
		return nil, ErrTotalTooLarge
	}

	now := time.Now()
	return &Order{
		OrderNo:         orderNo,
		UserID:          userID,
		ShippingAddress: address,
		Total:           total,
		Status:          StatusPending,
		OrderDate:       now,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// NormalizeShippingAddress 去除首尾空白并校验长度
func NormalizeShippingAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" || utf8.RuneCountInString(address) > MaxShippingAddressLength {
		return "", ErrInvalidShippingAddress
	}
	return address, nil
}

// CalculateTotal 计算总金额：Σ 单价 × 数量
// decimal加法满足交换律和结合律，结果与明细顺序无关
func CalculateTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ChangeStatus 修改订单状态
// 只校验状态值是否合法，不限制状态之间的流转
func (o *Order) ChangeStatus(status OrderStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}
