package handler

import (
	"github.com/gin-gonic/gin"

	appauth "github.com/xiebiao/bookshop/internal/application/auth"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/response"
)

// AuthHandler 认证相关处理器（Token由认证中心签发，这里只处理登出）
type AuthHandler struct {
	logoutUseCase *appauth.LogoutUseCase
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(logoutUseCase *appauth.LogoutUseCase) *AuthHandler {
	return &AuthHandler{logoutUseCase: logoutUseCase}
}

// Logout 登出，当前Token在过期前不可再用
// @Summary      登出
// @Tags         认证
// @Security     BearerAuth
// @Success      204
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok || claims.ExpiresAt == nil {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	err := h.logoutUseCase.Execute(c.Request.Context(), appauth.LogoutRequest{
		UserID:    claims.UserID,
		Token:     c.GetString(middleware.ContextToken),
		ExpiresAt: claims.ExpiresAt.Time,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
