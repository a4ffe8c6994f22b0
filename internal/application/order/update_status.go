package order

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// UpdateOrderStatusRequest 修改订单状态请求DTO
type UpdateOrderStatusRequest struct {
	OrderID uint
	Status  string
}

// UpdateOrderStatusUseCase 修改订单状态(管理员)
// 任何合法状态都可以设置，不限制状态流转
type UpdateOrderStatusUseCase struct {
	orderRepo order.Repository
	events    EventPublisher
	log       *zap.Logger
}

// NewUpdateOrderStatusUseCase 创建修改状态用例
func NewUpdateOrderStatusUseCase(orderRepo order.Repository, events EventPublisher, log *zap.Logger) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{
		orderRepo: orderRepo,
		events:    events,
		log:       log,
	}
}

func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	// 1. 状态值校验
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	// 2. 查询订单
	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	// 3. 修改状态
	from := o.Status
	if err := o.ChangeStatus(status); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.UpdateStatus(ctx, o.ID, o.Status, o.UpdatedAt); err != nil {
		return nil, err
	}

	metrics.IncCounterVec(metrics.OrderStatusUpdatesTotal, map[string]string{"status": status.String()})
	uc.log.Info("订单状态变更",
		zap.Uint("order_id", o.ID),
		zap.String("from", from.String()),
		zap.String("to", status.String()),
	)

	evt := order.StatusChangedEvent{
		OrderID:    o.ID,
		OrderNo:    o.OrderNo,
		UserID:     o.UserID,
		From:       from.String(),
		To:         status.String(),
		OccurredAt: time.Now(),
	}
	if err := uc.events.PublishOrderStatusChanged(ctx, evt); err != nil {
		uc.log.Error("发布订单状态变更事件失败", zap.Uint("order_id", o.ID), zap.Error(err))
	}

	return toOrderResponse(o), nil
}
