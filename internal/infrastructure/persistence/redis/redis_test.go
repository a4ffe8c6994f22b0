package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
)

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := &config.Config{Redis: config.RedisConfig{Host: mr.Host(), Port: port, PoolSize: 2}}
	client, err := NewClient(cfg, zap.NewNop())
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())

	mr.Close()
	_, err = NewClient(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestBookCache_GetSetDelete(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewBookCache(client, time.Minute)
	ctx := context.Background()

	_, hit, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, hit)

	b := &book.Book{
		ID:          1,
		Title:       "Dune",
		Author:      "Frank Herbert",
		ISBN:        "9780441172719",
		Price:       decimal.RequireFromString("9.99"),
		CategoryIDs: []uint{2, 3},
	}
	require.NoError(t, cache.Set(ctx, b))
	assert.Equal(t, time.Minute, mr.TTL("book:1"))

	got, hit, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "Dune", got.Title)
	assert.True(t, b.Price.Equal(got.Price))
	assert.Equal(t, []uint{2, 3}, got.CategoryIDs)

	require.NoError(t, cache.Delete(ctx, 1))
	_, hit, err = cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestBookCache_CorruptedValueIsMiss(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewBookCache(client, time.Minute)
	require.NoError(t, mr.Set("book:5", "{not json"))

	_, hit, err := cache.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestBookCache_RedisDown(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewBookCache(client, time.Minute)
	mr.Close()

	_, hit, err := cache.Get(context.Background(), 1)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestTokenBlacklist(t *testing.T) {
	client, mr := newTestClient(t)
	blacklist := NewTokenBlacklist(client)
	ctx := context.Background()

	revoked, err := blacklist.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, blacklist.Revoke(ctx, "token-a", time.Hour))
	revoked, err = blacklist.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	// 过期后自动移出黑名单
	mr.FastForward(2 * time.Hour)
	revoked, err = blacklist.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	// 已过期的Token不写入
	require.NoError(t, blacklist.Revoke(ctx, "token-b", 0))
	assert.False(t, mr.Exists(blacklistKey("token-b")))
}
