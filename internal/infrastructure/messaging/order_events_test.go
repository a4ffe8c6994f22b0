package messaging

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

type published struct {
	routingKey string
	message    interface{}
}

// fakePublisher 记录发布的消息，err不为nil时发布失败
type fakePublisher struct {
	mu       sync.Mutex
	err      error
	messages []published
	calls    int
}

func (p *fakePublisher) Exchange() string { return "bookshop.test" }

func (p *fakePublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return p.err
	}
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	p.messages = append(p.messages, published{routingKey: routingKey, message: message})
	return nil
}

func TestOrderEventPublisher_Publish(t *testing.T) {
	fake := &fakePublisher{}
	breaker := NewBreaker("test", config.MQConfig{BreakerTimeout: time.Minute, BreakerTrips: 2}, zap.NewNop())
	p := NewOrderEventPublisher(fake, breaker, time.Second, zap.NewNop())

	// 请求ctx已取消，发布仍然进行
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.PublishOrderCreated(ctx, order.CreatedEvent{OrderID: 1}))
	require.NoError(t, p.PublishOrderStatusChanged(context.Background(), order.StatusChangedEvent{OrderID: 1, To: "SHIPPED"}))

	require.Len(t, fake.messages, 2)
	assert.Equal(t, order.RoutingKeyCreated, fake.messages[0].routingKey)
	assert.Equal(t, order.RoutingKeyStatusChanged, fake.messages[1].routingKey)
}

func TestOrderEventPublisher_BreakerOpens(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	fake := &fakePublisher{err: errors.New("connection refused")}
	breaker := NewBreaker("test", config.MQConfig{BreakerTimeout: time.Minute, BreakerTrips: 2}, zap.New(core))
	p := NewOrderEventPublisher(fake, breaker, time.Second, zap.NewNop())

	for i := 0; i < 2; i++ {
		err := p.PublishOrderCreated(context.Background(), order.CreatedEvent{OrderID: 1})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeMQError, apperrors.GetAppError(err).Code)
	}
	assert.Equal(t, circuitbreaker.StateOpen, breaker.State())

	// 熔断打开后不再调用RabbitMQ
	err := p.PublishOrderCreated(context.Background(), order.CreatedEvent{OrderID: 1})
	assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
	assert.Equal(t, 2, fake.calls)

	assert.Equal(t, 1, logs.FilterMessage("熔断器状态变化").Len())
}

func TestLogEventPublisher(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewLogEventPublisher(zap.New(core))

	require.NoError(t, p.PublishOrderCreated(context.Background(), order.CreatedEvent{OrderID: 3, Total: "24.98"}))
	require.NoError(t, p.PublishOrderStatusChanged(context.Background(), order.StatusChangedEvent{OrderID: 3, To: "SHIPPED"}))

	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, "24.98", logs.All()[0].ContextMap()["total"])
}
