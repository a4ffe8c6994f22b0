package dto

import "github.com/shopspring/decimal"

// BookRequest HTTP图书上架/更新请求
// validator tag说明:
// - isbn: 自定义ISBN格式校验(在pkg/validator中注册)
// - notblank: 去除首尾空白后非空
// price接受"9.99"或9.99，是否大于0由领域层校验
type BookRequest struct {
	Title       string          `json:"title" binding:"required,notblank,max=255" example:"Go语言实战"`
	Author      string          `json:"author" binding:"required,notblank,max=255" example:"威廉·肯尼迪"`
	ISBN        string          `json:"isbn" binding:"required,isbn" example:"9787115428028"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"59.00"`
	Description string          `json:"description" binding:"max=1000" example:"这是一本关于Go语言的实战书籍"`
	CoverImage  string          `json:"cover_image" binding:"omitempty,url,max=255" example:"https://example.com/cover.jpg"`
	CategoryIDs []uint          `json:"category_ids" binding:"omitempty,dive,min=1" example:"1,2"`
}

// ListBooksQuery 图书列表/搜索的分页参数
type ListBooksQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"10"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=title_asc price_asc price_desc created_at_desc" example:"price_asc"`
}
