// Package messaging 订单领域事件发布
//
// 事件在数据库事务提交之后发布，发布失败只记录日志，不影响已提交的订单。
// RabbitMQ不可用时由熔断器快速失败，避免每个请求都等待发布超时。
package messaging

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// Publisher 消息发布(由pkg/mq.Publisher实现)
type Publisher interface {
	Exchange() string
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// OrderEventPublisher 通过RabbitMQ发布订单事件
type OrderEventPublisher struct {
	publisher Publisher
	breaker   *circuitbreaker.CircuitBreaker
	timeout   time.Duration
	log       *zap.Logger
}

// NewOrderEventPublisher 创建订单事件发布者
func NewOrderEventPublisher(publisher Publisher, breaker *circuitbreaker.CircuitBreaker, timeout time.Duration, log *zap.Logger) *OrderEventPublisher {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &OrderEventPublisher{
		publisher: publisher,
		breaker:   breaker,
		timeout:   timeout,
		log:       log,
	}
}

// PublishOrderCreated 发布order.created
func (p *OrderEventPublisher) PublishOrderCreated(ctx context.Context, evt order.CreatedEvent) error {
	return p.publish(ctx, order.RoutingKeyCreated, evt)
}

// PublishOrderStatusChanged 发布order.status_changed
func (p *OrderEventPublisher) PublishOrderStatusChanged(ctx context.Context, evt order.StatusChangedEvent) error {
	return p.publish(ctx, order.RoutingKeyStatusChanged, evt)
}

func (p *OrderEventPublisher) publish(ctx context.Context, routingKey string, event interface{}) error {
	// 请求结束不应取消已经开始的发布
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.publisher.Publish(ctx, routingKey, event)
	})

	result := "success"
	if err != nil {
		result = "failure"
		if errors.Is(err, circuitbreaker.ErrOpenState) {
			result = "rejected"
		}
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    p.publisher.Exchange(),
		"routing_key": routingKey,
		"result":      result,
	})
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{
		"name":   p.breaker.Name(),
		"result": result,
	})

	if err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeMQError, "发布订单事件失败")
	}
	return nil
}

// NewBreaker 按配置创建熔断器，状态变化写日志和指标
func NewBreaker(name string, cfg config.MQConfig, log *zap.Logger) *circuitbreaker.CircuitBreaker {
	trips := cfg.BreakerTrips
	if trips == 0 {
		trips = 5
	}

	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(circuitbreaker.StateClosed))
	return circuitbreaker.New(name, circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: circuitbreaker.ConsecutiveFailures(trips),
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
		},
	})
}

// LogEventPublisher 未启用消息队列时使用，只记录日志
type LogEventPublisher struct {
	log *zap.Logger
}

// NewLogEventPublisher 创建日志事件发布者
func NewLogEventPublisher(log *zap.Logger) *LogEventPublisher {
	return &LogEventPublisher{log: log}
}

func (p *LogEventPublisher) PublishOrderCreated(_ context.Context, evt order.CreatedEvent) error {
	p.log.Info("订单已创建",
		zap.Uint("order_id", evt.OrderID),
		zap.String("order_no", evt.OrderNo),
		zap.Uint("user_id", evt.UserID),
		zap.String("total", evt.Total),
	)
	return nil
}

func (p *LogEventPublisher) PublishOrderStatusChanged(_ context.Context, evt order.StatusChangedEvent) error {
	p.log.Info("订单状态已变更",
		zap.Uint("order_id", evt.OrderID),
		zap.String("from", evt.From),
		zap.String("to", evt.To),
	)
	return nil
}
