// Package router 注册所有HTTP路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/response"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	Book     *handler.BookHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Auth     *handler.AuthHandler
}

// New 创建Gin引擎并注册路由
//
//	公开：图书查询、分类查询
//	登录：购物车、下单、我的订单、登出
//	管理员：图书/分类维护、修改订单状态
func New(cfg *config.Config, log *zap.Logger, h Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(),
	)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.Server.Mode != "release" {
		// 生产环境不暴露接口文档
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := auth.RequireAuth()
	requireAdmin := auth.RequireRole(jwt.RoleAdmin)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/logout", requireAuth, h.Auth.Logout)

		books := v1.Group("/books")
		{
			books.GET("", h.Book.ListBooks)
			books.GET("/search", h.Book.SearchBooks)
			books.GET("/:id", h.Book.GetBook)

			books.POST("", requireAuth, requireAdmin, h.Book.PublishBook)
			books.PUT("/:id", requireAuth, requireAdmin, h.Book.UpdateBook)
			books.DELETE("/:id", requireAuth, requireAdmin, h.Book.DeleteBook)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", h.Category.ListCategories)
			categories.GET("/:id", h.Category.GetCategory)
			categories.GET("/:id/books", h.Book.ListCategoryBooks)

			categories.POST("", requireAuth, requireAdmin, h.Category.CreateCategory)
			categories.PUT("/:id", requireAuth, requireAdmin, h.Category.UpdateCategory)
			categories.DELETE("/:id", requireAuth, requireAdmin, h.Category.DeleteCategory)
		}

		cart := v1.Group("/cart", requireAuth)
		{
			cart.GET("", h.Cart.GetCart)
			cart.POST("", h.Cart.AddItem)
			cart.PUT("/items/:itemId", h.Cart.UpdateItem)
			cart.DELETE("/items/:itemId", h.Cart.RemoveItem)
		}

		orders := v1.Group("/orders", requireAuth)
		{
			orders.POST("", h.Order.CreateOrder)
			orders.GET("", h.Order.ListOrders)
			orders.GET("/:orderId/items", h.Order.GetOrderItems)
			orders.GET("/:orderId/items/:itemId", h.Order.GetOrderItem)
			orders.PATCH("/:orderId", requireAdmin, h.Order.UpdateOrderStatus)
		}
	}

	return r
}
