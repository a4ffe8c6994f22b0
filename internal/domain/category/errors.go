package category

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

var (
	ErrCategoryNotFound   = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")
	ErrNameDuplicate      = apperrors.New(apperrors.ErrCodeCategoryNameDuplicate, "分类名称已存在")
	ErrInvalidName        = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名称不能为空且不超过100个字符")
	ErrInvalidDescription = apperrors.New(apperrors.ErrCodeInvalidParams, "分类描述不能超过255个字符")
)
