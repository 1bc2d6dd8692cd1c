package item

import (
	apperrors "github.com/checkproof/inventory/pkg/errors"
)

// 商品领域错误定义
var (
	// ErrItemNotFound 商品不存在
	ErrItemNotFound = apperrors.ErrItemNotFound

	// ErrDescriptionDuplicate 商品描述已存在
	ErrDescriptionDuplicate = apperrors.ErrDescriptionDuplicate

	// ErrEmptyName 商品名称不能为空
	ErrEmptyName = apperrors.New(apperrors.ErrCodeInvalidParams, "商品名称不能为空")

	// ErrEmptyDescription 商品描述不能为空
	ErrEmptyDescription = apperrors.New(apperrors.ErrCodeInvalidParams, "商品描述不能为空")
)
