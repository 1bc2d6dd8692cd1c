package variant

import (
	apperrors "github.com/checkproof/inventory/pkg/errors"
)

// 规格领域错误定义
var (
	// ErrVariantNotFound 规格不存在
	ErrVariantNotFound = apperrors.ErrVariantNotFound

	// ErrSKUDuplicate SKU已存在
	ErrSKUDuplicate = apperrors.ErrSKUDuplicate

	// ErrEmptyItemID 所属商品ID不能为空
	ErrEmptyItemID = apperrors.New(apperrors.ErrCodeInvalidParams, "所属商品ID不能为空")

	// ErrEmptyName 规格名称不能为空
	ErrEmptyName = apperrors.New(apperrors.ErrCodeInvalidParams, "规格名称不能为空")

	// ErrEmptySKU SKU不能为空
	ErrEmptySKU = apperrors.New(apperrors.ErrCodeInvalidParams, "SKU不能为空")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")
)
