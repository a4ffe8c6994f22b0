package order

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/order"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

const tracerName = "bookshop/application/order"

// CreateOrderUseCase 下单用例：购物车 → 订单
// 涉及事务处理、行锁和价格快照
type CreateOrderUseCase struct {
	orderRepo order.Repository
	cartRepo  cart.Repository
	bookRepo  book.Repository
	tx        Transactor
	events    EventPublisher
	log       *zap.Logger
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	cartRepo cart.Repository,
	bookRepo book.Repository,
	tx Transactor,
	events EventPublisher,
	log *zap.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		bookRepo:  bookRepo,
		tx:        tx,
		events:    events,
		log:       log,
	}
}

// CreateOrderRequest 下单请求DTO
type CreateOrderRequest struct {
	UserID          uint   // 从JWT中提取
	ShippingAddress string // 收货地址
}

// Execute 执行下单
//
// 在一个事务中完成：
//  1. SELECT FOR UPDATE 锁定购物车(同一购物车的并发下单串行执行)
//  2. 批量查询图书，使用数据库中的当前价格(不信任前端价格)
//  3. 创建订单和明细(价格快照)
//  4. 清空购物车
//
// 任一步骤失败整个事务回滚，购物车保持原样。
// 事务提交后记录指标并发布order.created事件。
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (resp *OrderResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateOrder")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", int64(req.UserID)))

	start := time.Now()
	metrics.IncGauge(metrics.OrdersInProgress)
	defer func() {
		metrics.DecGauge(metrics.OrdersInProgress)
		metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())
		if err != nil {
			tracing.RecordError(span, err)
			metrics.IncCounterVec(metrics.OrdersFailedTotal, map[string]string{
				"reason": strconv.Itoa(apperrors.GetAppError(err).Code),
			})
		}
	}()

	// 0. 参数校验
	address, err := order.NormalizeShippingAddress(req.ShippingAddress)
	if err != nil {
		return nil, err
	}

	var created *order.Order
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定购物车
		c, err := uc.cartRepo.LockByUserID(txCtx, req.UserID)
		if err != nil {
			return err
		}
		if c.IsEmpty() {
			return order.ErrEmptyCart
		}

		// 2. 批量查询图书(一条SQL)
		books, err := uc.bookRepo.FindByIDs(txCtx, c.BookIDs())
		if err != nil {
			return err
		}

		items := make([]order.OrderItem, len(c.Items))
		for i, item := range c.Items {
			b, ok := books[item.BookID]
			if !ok {
				// 加购后图书被删除
				return book.ErrBookNotFound
			}
			items[i] = order.OrderItem{
				BookID:   item.BookID,
				Quantity: item.Quantity,
				Price:    b.Price,
			}
		}

		// 3. 创建订单(包含明细)
		o, err := order.NewOrder(order.GenerateOrderNo(), req.UserID, address, items)
		if err != nil {
			return err
		}
		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}

		// 4. 清空购物车(购物车本身保留)
		if err := uc.cartRepo.ClearItems(txCtx, c.ID); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 事务已提交
	metrics.IncCounter(metrics.OrdersCreatedTotal)
	metrics.ObserveHistogram(metrics.OrderAmount, created.Total.InexactFloat64())
	span.SetAttributes(
		attribute.Int64("order.id", int64(created.ID)),
		attribute.String("order.no", created.OrderNo),
		attribute.String("order.total", created.Total.StringFixed(2)),
		attribute.Int("order.items", len(created.Items)),
	)
	uc.log.Info("下单成功",
		zap.Uint("order_id", created.ID),
		zap.String("order_no", created.OrderNo),
		zap.Uint("user_id", created.UserID),
		zap.String("total", created.Total.StringFixed(2)),
		zap.String("trace_id", tracing.ExtractTraceID(ctx)),
	)

	if err := uc.events.PublishOrderCreated(ctx, order.NewCreatedEvent(created)); err != nil {
		uc.log.Error("发布订单创建事件失败", zap.Uint("order_id", created.ID), zap.Error(err))
	}

	return toOrderResponse(created), nil
}
