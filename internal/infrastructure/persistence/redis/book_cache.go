package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

const bookCacheName = "book"

// BookCache 图书详情缓存(Cache-Aside)
// 1. 读：先查缓存，未命中再查数据库并回填
// 2. 写：更新、删除图书后删除缓存，下次读取时重新加载
// 3. Key设计：book:{id}，值为JSON
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

// Get 读取缓存，第二个返回值表示是否命中
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, bool, error) {
	data, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			recordCache("miss")
			return nil, false, nil
		}
		recordCache("error")
		return nil, false, apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "读取图书缓存失败")
	}

	var b book.Book
	if err := json.Unmarshal(data, &b); err != nil {
		// 缓存内容损坏按未命中处理，由调用方重新回填
		recordCache("miss")
		return nil, false, nil
	}
	recordCache("hit")
	return &b, true, nil
}

// Set 写入缓存
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	data, err := json.Marshal(b)
	if err != nil {
		return apperrors.Wrap(err, "序列化图书缓存失败")
	}
	if err := c.client.Set(ctx, bookKey(b.ID), data, c.ttl).Err(); err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "写入图书缓存失败")
	}
	return nil
}

// Delete 删除缓存
func (c *BookCache) Delete(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, bookKey(id)).Err(); err != nil {
		return apperrors.WrapWithCode(err, apperrors.ErrCodeRedisError, "删除图书缓存失败")
	}
	return nil
}

func bookKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}

func recordCache(result string) {
	metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{
		"cache":  bookCacheName,
		"result": result,
	})
}
