package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	publishBookUseCase       *appbook.PublishBookUseCase
	getBookUseCase           *appbook.GetBookUseCase
	updateBookUseCase        *appbook.UpdateBookUseCase
	deleteBookUseCase        *appbook.DeleteBookUseCase
	listBooksUseCase         *appbook.ListBooksUseCase
	searchBooksUseCase       *appbook.SearchBooksUseCase
	listCategoryBooksUseCase *appbook.ListCategoryBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	publishBookUseCase *appbook.PublishBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	searchBooksUseCase *appbook.SearchBooksUseCase,
	listCategoryBooksUseCase *appbook.ListCategoryBooksUseCase,
) *BookHandler {
	return &BookHandler{
		publishBookUseCase:       publishBookUseCase,
		getBookUseCase:           getBookUseCase,
		updateBookUseCase:        updateBookUseCase,
		deleteBookUseCase:        deleteBookUseCase,
		listBooksUseCase:         listBooksUseCase,
		searchBooksUseCase:       searchBooksUseCase,
		listCategoryBooksUseCase: listCategoryBooksUseCase,
	}
}

func toBookRequest(req dto.BookRequest) appbook.BookRequest {
	return appbook.BookRequest{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Price:       req.Price,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		CategoryIDs: req.CategoryIDs,
	}
}

func toListRequest(q dto.ListBooksQuery) appbook.ListBooksRequest {
	return appbook.ListBooksRequest{Page: q.Page, PageSize: q.PageSize, SortBy: q.SortBy}
}

// PublishBook 图书上架
// @Summary      图书上架
// @Description  管理员新增图书，可同时指定所属分类
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} response.Response{data=book.BookResponse}
// @Failure      400 {object} response.Response "参数错误或ISBN已存在"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) PublishBook(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.publishBookUseCase.Execute(c.Request.Context(), toBookRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=book.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateBook 修改图书(整体替换)
// @Summary      修改图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int             true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=book.BookResponse}
// @Failure      400 {object} response.Response "参数错误或ISBN已存在"
// @Failure      404 {object} response.Response "图书或分类不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), id, toBookRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteBook 删除图书(软删除)
// @Summary      删除图书
// @Tags         图书
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      204
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListBooks 图书列表
// @Summary      图书列表
// @Tags         图书
// @Produce      json
// @Param        page      query int    false "页码" default(1)
// @Param        page_size query int    false "每页数量" default(10)
// @Param        sort_by   query string false "排序" Enums(title_asc, price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response{data=book.ListBooksResponse}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q dto.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), toListRequest(q))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SearchBooks 图书动态搜索
// @Summary      图书搜索
// @Description  不同字段之间AND，同一字段多个值之间OR，如?author=A&author=B&category_id=3
// @Tags         图书
// @Produce      json
// @Param        title       query []string false "书名(精确匹配)" collectionFormat(multi)
// @Param        author      query []string false "作者(精确匹配)" collectionFormat(multi)
// @Param        isbn        query []string false "ISBN" collectionFormat(multi)
// @Param        category_id query []int    false "分类ID" collectionFormat(multi)
// @Param        page        query int      false "页码" default(1)
// @Param        page_size   query int      false "每页数量" default(10)
// @Param        sort_by     query string   false "排序" Enums(title_asc, price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response{data=book.ListBooksResponse}
// @Router       /api/v1/books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var q dto.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	filters := make(book.SearchFilters, len(book.SearchableFields))
	for _, field := range book.SearchableFields {
		if values := c.QueryArray(field); len(values) > 0 {
			filters[field] = values
		}
	}

	result, err := h.searchBooksUseCase.Execute(c.Request.Context(), appbook.SearchBooksRequest{
		ListBooksRequest: toListRequest(q),
		Filters:          filters,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListCategoryBooks 分类下的图书
// @Summary      分类下的图书
// @Tags         分类
// @Produce      json
// @Param        id        path  int    true  "分类ID"
// @Param        page      query int    false "页码" default(1)
// @Param        page_size query int    false "每页数量" default(10)
// @Param        sort_by   query string false "排序" Enums(title_asc, price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response{data=book.ListBooksResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id}/books [get]
func (h *BookHandler) ListCategoryBooks(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q dto.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.listCategoryBooksUseCase.Execute(c.Request.Context(), id, toListRequest(q))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
