package book

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	ErrInvalidTitle       = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空且不超过255个字符")
	ErrInvalidAuthor      = apperrors.New(apperrors.ErrCodeInvalidParams, "作者不能为空且不超过255个字符")
	ErrInvalidISBN        = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确")
	ErrInvalidPrice       = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0且不超过99999999.99")
	ErrInvalidDescription = apperrors.New(apperrors.ErrCodeInvalidParams, "图书描述不能超过1000个字符")
	ErrInvalidCoverImage  = apperrors.New(apperrors.ErrCodeInvalidParams, "封面地址不能超过255个字符")
)
