package auth

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// TokenRevoker Token黑名单写入（由redis.TokenBlacklist实现）
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// LogoutRequest 登出请求DTO
type LogoutRequest struct {
	UserID    uint
	Token     string
	ExpiresAt time.Time // Token过期时间，黑名单记录保留到这个时间
}

// LogoutUseCase 登出用例
// Token由认证中心签发，本服务无法让它提前过期，只能加入黑名单直到自然过期
type LogoutUseCase struct {
	revoker TokenRevoker
	log     *zap.Logger
	now     func() time.Time
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(revoker TokenRevoker, log *zap.Logger) *LogoutUseCase {
	return &LogoutUseCase{
		revoker: revoker,
		log:     log,
		now:     time.Now,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, req LogoutRequest) error {
	ttl := req.ExpiresAt.Sub(uc.now())
	if ttl <= 0 {
		// 已过期的Token无需拉黑
		return nil
	}

	if err := uc.revoker.Revoke(ctx, req.Token, ttl); err != nil {
		return err
	}

	uc.log.Info("用户登出", zap.Uint("user_id", req.UserID), zap.Duration("revoked_for", ttl))
	return nil
}
