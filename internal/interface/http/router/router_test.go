package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appauth "github.com/xiebiao/bookshop/internal/application/auth"
	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	appcategory "github.com/xiebiao/bookshop/internal/application/category"
	apporder "github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/category"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/messaging"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql/mysqltest"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/validator"
)

const (
	adminID = 1
	aliceID = 7
	bobID   = 8
)

type server struct {
	engine *gin.Engine
	tokens map[uint]string
}

// newServer 组装完整的HTTP服务：sqlite + miniredis，事件只写日志
func newServer(t *testing.T) *server {
	t.Helper()
	require.NoError(t, validator.Register())

	log := zap.NewNop()
	db := mysqltest.Open(t)
	builder, err := mysql.NewBookSpecificationBuilder()
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	bookRepo := mysql.NewBookRepository(db, builder)
	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	bookService := book.NewService(bookRepo)
	categoryService := category.NewService(mysql.NewCategoryRepository(db))
	cache := redis.NewBookCache(client, time.Minute)
	blacklist := redis.NewTokenBlacklist(client)
	events := messaging.NewLogEventPublisher(log)
	jwtManager := jwt.NewManager("router-test-secret", time.Hour)

	h := Handlers{
		Book: handler.NewBookHandler(
			appbook.NewPublishBookUseCase(bookService, categoryService),
			appbook.NewGetBookUseCase(bookService, cache, log),
			appbook.NewUpdateBookUseCase(bookService, categoryService, cache, log),
			appbook.NewDeleteBookUseCase(bookService, cache, log),
			appbook.NewListBooksUseCase(bookService),
			appbook.NewSearchBooksUseCase(bookService),
			appbook.NewListCategoryBooksUseCase(bookService, categoryService),
		),
		Category: handler.NewCategoryHandler(
			appcategory.NewCreateCategoryUseCase(categoryService),
			appcategory.NewGetCategoryUseCase(categoryService),
			appcategory.NewListCategoriesUseCase(categoryService),
			appcategory.NewUpdateCategoryUseCase(categoryService),
			appcategory.NewDeleteCategoryUseCase(categoryService),
		),
		Cart: handler.NewCartHandler(
			appcart.NewGetCartUseCase(cartRepo, bookRepo),
			appcart.NewAddCartItemUseCase(cartRepo, bookRepo, log),
			appcart.NewUpdateCartItemUseCase(cartRepo, bookRepo),
			appcart.NewRemoveCartItemUseCase(cartRepo),
		),
		Order: handler.NewOrderHandler(
			apporder.NewCreateOrderUseCase(orderRepo, cartRepo, bookRepo, mysql.NewTxManager(db), events, log),
			apporder.NewListOrdersUseCase(orderRepo),
			apporder.NewGetOrderItemsUseCase(orderRepo),
			apporder.NewGetOrderItemUseCase(orderRepo),
			apporder.NewUpdateOrderStatusUseCase(orderRepo, events, log),
		),
		Auth: handler.NewAuthHandler(appauth.NewLogoutUseCase(blacklist, log)),
	}

	cfg := &config.Config{Server: config.ServerConfig{Mode: "test"}}
	engine := New(cfg, log, h, middleware.NewAuthMiddleware(jwtManager, blacklist))

	tokens := map[uint]string{}
	for id, role := range map[uint]string{adminID: jwt.RoleAdmin, aliceID: jwt.RoleUser, bobID: jwt.RoleUser} {
		token, err := jwtManager.GenerateToken(id, fmt.Sprintf("user%d@example.com", id), role)
		require.NoError(t, err)
		tokens[id] = token
	}
	return &server{engine: engine, tokens: tokens}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do 发送请求，as为0表示匿名
func (s *server) do(t *testing.T, method, path string, as uint, body interface{}) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if as != 0 {
		req.Header.Set("Authorization", "Bearer "+s.tokens[as])
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func (s *server) createBook(t *testing.T, title, isbn, price string, categoryIDs ...uint) appbook.BookResponse {
	t.Helper()
	status, env := s.do(t, http.MethodPost, "/api/v1/books", adminID, map[string]interface{}{
		"title":        title,
		"author":       "Author",
		"isbn":         isbn,
		"price":        price,
		"category_ids": categoryIDs,
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	return decode[appbook.BookResponse](t, env)
}

func TestPing(t *testing.T) {
	s := newServer(t)
	status, env := s.do(t, http.MethodGet, "/ping", 0, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, env.Code)
}

func TestCatalogAdminOnly(t *testing.T) {
	s := newServer(t)
	body := map[string]interface{}{"title": "Dune", "author": "Frank Herbert", "isbn": "9780441172719", "price": "9.99"}

	status, env := s.do(t, http.MethodPost, "/api/v1/books", 0, body)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, env.Code)

	status, env = s.do(t, http.MethodPost, "/api/v1/books", aliceID, body)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, apperrors.ErrCodeForbidden, env.Code)

	status, _ = s.do(t, http.MethodPost, "/api/v1/categories", aliceID, map[string]string{"name": "SciFi"})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestBookLifecycle(t *testing.T) {
	s := newServer(t)

	status, env := s.do(t, http.MethodPost, "/api/v1/categories", adminID, map[string]string{"name": "SciFi"})
	require.Equal(t, http.StatusCreated, status, env.Message)
	scifi := decode[appcategory.CategoryResponse](t, env)

	dune := s.createBook(t, "Dune", "978-0-441-17271-9", "9.99", scifi.ID)
	assert.Equal(t, "9780441172719", dune.ISBN)
	assert.Equal(t, "9.99", dune.Price)
	assert.Equal(t, []uint{scifi.ID}, dune.CategoryIDs)

	t.Run("ISBN重复", func(t *testing.T) {
		status, env := s.do(t, http.MethodPost, "/api/v1/books", adminID, map[string]interface{}{
			"title": "Dune 2", "author": "Frank Herbert", "isbn": "9780441172719", "price": "19.99",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeISBNDuplicate, env.Code)
	})

	t.Run("ISBN格式错误", func(t *testing.T) {
		status, env := s.do(t, http.MethodPost, "/api/v1/books", adminID, map[string]interface{}{
			"title": "X", "author": "Y", "isbn": "12345", "price": "1.00",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
	})

	t.Run("价格必须大于0", func(t *testing.T) {
		status, _ := s.do(t, http.MethodPost, "/api/v1/books", adminID, map[string]interface{}{
			"title": "X", "author": "Y", "isbn": "0000000001", "price": "0",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("详情", func(t *testing.T) {
		status, env := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/books/%d", dune.ID), 0, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Dune", decode[appbook.BookResponse](t, env).Title)

		status, env = s.do(t, http.MethodGet, "/api/v1/books/9999", 0, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, apperrors.ErrCodeBookNotFound, env.Code)

		status, _ = s.do(t, http.MethodGet, "/api/v1/books/abc", 0, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("修改后详情立即生效", func(t *testing.T) {
		status, env := s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/books/%d", dune.ID), adminID, map[string]interface{}{
			"title": "Dune", "author": "Frank Herbert", "isbn": "9780441172719", "price": "12.50",
		})
		require.Equal(t, http.StatusOK, status, env.Message)

		_, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/books/%d", dune.ID), 0, nil)
		got := decode[appbook.BookResponse](t, env)
		assert.Equal(t, "12.50", got.Price)
		assert.Empty(t, got.CategoryIDs)
	})

	t.Run("删除", func(t *testing.T) {
		status, _ := s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", dune.ID), adminID, nil)
		assert.Equal(t, http.StatusNoContent, status)

		status, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/books/%d", dune.ID), 0, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestSearchBooks(t *testing.T) {
	s := newServer(t)
	_, env := s.do(t, http.MethodPost, "/api/v1/categories", adminID, map[string]string{"name": "Fantasy"})
	fantasy := decode[appcategory.CategoryResponse](t, env)

	s.createBook(t, "Dune", "0000000001", "9.99")
	s.createBook(t, "The Hobbit", "0000000002", "5.00", fantasy.ID)
	s.createBook(t, "Emma", "0000000003", "7.50")

	cases := []struct {
		name   string
		query  string
		titles []string
	}{
		{"无条件返回全部", "", []string{"Dune", "Emma", "The Hobbit"}},
		{"同一字段OR", "?title=Dune&title=Emma", []string{"Dune", "Emma"}},
		{"字段之间AND", "?title=Dune&category_id=" + fmt.Sprint(fantasy.ID), []string{}},
		{"按分类", "?category_id=" + fmt.Sprint(fantasy.ID), []string{"The Hobbit"}},
		{"按价格排序", "?sort_by=price_desc", []string{"Dune", "Emma", "The Hobbit"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := s.do(t, http.MethodGet, "/api/v1/books/search"+tc.query, 0, nil)
			require.Equal(t, http.StatusOK, status, env.Message)

			page := decode[appbook.ListBooksResponse](t, env)
			titles := make([]string, len(page.List))
			for i, b := range page.List {
				titles[i] = b.Title
			}
			if tc.query == "?sort_by=price_desc" {
				assert.Equal(t, tc.titles, titles)
			} else {
				assert.ElementsMatch(t, tc.titles, titles)
			}
			assert.EqualValues(t, len(tc.titles), page.Total)
		})
	}

	t.Run("非法排序参数", func(t *testing.T) {
		status, _ := s.do(t, http.MethodGet, "/api/v1/books/search?sort_by=rating", 0, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("分类下的图书", func(t *testing.T) {
		status, env := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/categories/%d/books", fantasy.ID), 0, nil)
		require.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, 1, decode[appbook.ListBooksResponse](t, env).Total)

		status, _ = s.do(t, http.MethodGet, "/api/v1/categories/9999/books", 0, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestCheckoutFlow(t *testing.T) {
	s := newServer(t)
	dune := s.createBook(t, "Dune", "0000000001", "9.99")
	hobbit := s.createBook(t, "The Hobbit", "0000000002", "5.00")

	// 空购物车不能下单
	s.do(t, http.MethodGet, "/api/v1/cart", aliceID, nil)
	status, env := s.do(t, http.MethodPost, "/api/v1/orders", aliceID, map[string]string{"shipping_address": "123 Main St"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apperrors.ErrCodeEmptyCart, env.Code)

	// q1+q2合并
	s.do(t, http.MethodPost, "/api/v1/cart", aliceID, map[string]interface{}{"book_id": dune.ID, "quantity": 1})
	s.do(t, http.MethodPost, "/api/v1/cart", aliceID, map[string]interface{}{"book_id": dune.ID, "quantity": 1})
	status, env = s.do(t, http.MethodPost, "/api/v1/cart", aliceID, map[string]interface{}{"book_id": hobbit.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, status, env.Message)
	c := decode[appcart.CartResponse](t, env)
	require.Len(t, c.Items, 2)
	assert.Equal(t, 3, c.TotalQuantity)

	t.Run("数量为0", func(t *testing.T) {
		status, _ := s.do(t, http.MethodPost, "/api/v1/cart", aliceID, map[string]interface{}{"book_id": dune.ID, "quantity": 0})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("不能修改别人的购物车明细", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/cart/items/%d", c.Items[0].ID)
		status, env := s.do(t, http.MethodPut, path, bobID, map[string]int{"quantity": 5})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, apperrors.ErrCodeCartItemNotFound, env.Code)

		status, _ = s.do(t, http.MethodDelete, path, bobID, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	status, env = s.do(t, http.MethodPost, "/api/v1/orders", aliceID, map[string]string{"shipping_address": "123 Main St"})
	require.Equal(t, http.StatusCreated, status, env.Message)
	created := decode[apporder.OrderResponse](t, env)
	assert.Equal(t, "24.98", created.Total)
	assert.Equal(t, "PENDING", created.Status)
	require.Len(t, created.Items, 2)

	// 下单后购物车为空
	_, env = s.do(t, http.MethodGet, "/api/v1/cart", aliceID, nil)
	assert.Empty(t, decode[appcart.CartResponse](t, env).Items)

	t.Run("我的订单", func(t *testing.T) {
		status, env := s.do(t, http.MethodGet, "/api/v1/orders", aliceID, nil)
		require.Equal(t, http.StatusOK, status)
		list := decode[apporder.ListOrdersResponse](t, env)
		require.Len(t, list.List, 1)
		assert.Equal(t, created.OrderNo, list.List[0].OrderNo)

		_, env = s.do(t, http.MethodGet, "/api/v1/orders", bobID, nil)
		assert.Empty(t, decode[apporder.ListOrdersResponse](t, env).List)
	})

	t.Run("订单明细", func(t *testing.T) {
		status, env := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d/items", created.ID), aliceID, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, decode[[]apporder.OrderItemResponse](t, env), 2)

		item := created.Items[0]
		status, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d/items/%d", created.ID, item.ID), aliceID, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, item.Price, decode[apporder.OrderItemResponse](t, env).Price)

		// 别人的订单
		status, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d/items", created.ID), bobID, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("明细不属于该订单", func(t *testing.T) {
		s.do(t, http.MethodPost, "/api/v1/cart", aliceID, map[string]interface{}{"book_id": hobbit.ID, "quantity": 1})
		_, env := s.do(t, http.MethodPost, "/api/v1/orders", aliceID, map[string]string{"shipping_address": "456 Side St"})
		second := decode[apporder.OrderResponse](t, env)

		path := fmt.Sprintf("/api/v1/orders/%d/items/%d", created.ID, second.Items[0].ID)
		status, env := s.do(t, http.MethodGet, path, aliceID, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, apperrors.ErrCodeOrderItemNotInOrder, env.Code)
	})

	t.Run("管理员修改状态", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/orders/%d", created.ID)
		status, _ := s.do(t, http.MethodPatch, path, aliceID, map[string]string{"status": "SHIPPED"})
		assert.Equal(t, http.StatusForbidden, status)

		status, env := s.do(t, http.MethodPatch, path, adminID, map[string]string{"status": "shipped"})
		require.Equal(t, http.StatusOK, status, env.Message)
		assert.Equal(t, "SHIPPED", decode[apporder.OrderResponse](t, env).Status)

		status, env = s.do(t, http.MethodPatch, path, adminID, map[string]string{"status": "LOST"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeInvalidOrderStatus, env.Code)
	})
}

func TestLogout(t *testing.T) {
	s := newServer(t)

	status, _ := s.do(t, http.MethodGet, "/api/v1/cart", aliceID, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodPost, "/api/v1/auth/logout", aliceID, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, env := s.do(t, http.MethodGet, "/api/v1/cart", aliceID, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.ErrCodeTokenRevoked, env.Code)

	// 其他用户不受影响
	status, _ = s.do(t, http.MethodGet, "/api/v1/cart", bobID, nil)
	assert.Equal(t, http.StatusOK, status)
}
