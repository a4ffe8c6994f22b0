package mq

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msg, err := newPublishing(map[string]interface{}{"order_id": 42, "total": "24.98"}, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, now, msg.Timestamp)
	assert.NotEmpty(t, msg.MessageId)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "24.98", decoded["total"])
	assert.EqualValues(t, 42, decoded["order_id"])
}

func TestNewPublishingUniqueMessageID(t *testing.T) {
	a, err := newPublishing("x", time.Now())
	require.NoError(t, err)
	b, err := newPublishing("x", time.Now())
	require.NoError(t, err)

	assert.NotEqual(t, a.MessageId, b.MessageId)
}

func TestNewPublishingUnsupportedValue(t *testing.T) {
	_, err := newPublishing(make(chan int), time.Now())
	assert.Error(t, err)
}

// TestPublishToBroker 需要真实RabbitMQ，设置BOOKSHOP_TEST_AMQP_URL后运行
func TestPublishToBroker(t *testing.T) {
	url := os.Getenv("BOOKSHOP_TEST_AMQP_URL")
	if url == "" {
		t.Skip("未设置BOOKSHOP_TEST_AMQP_URL，跳过RabbitMQ集成测试")
	}

	publisher, err := NewPublisher(url, "bookshop.test", "topic")
	require.NoError(t, err)
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = publisher.Publish(ctx, "order.created", map[string]interface{}{"order_id": 1})
	assert.NoError(t, err)
	assert.Equal(t, "bookshop.test", publisher.Exchange())
}
