package stock

import (
	apperrors "github.com/checkproof/inventory/pkg/errors"
)

// 库存领域错误定义
// 设计说明:
// 1. 错误码在pkg/errors统一分配,领域层只负责携带业务语义
// 2. 库存不足/超额提交类错误携带具体数量,便于调用方和排障定位
// 3. ErrVersionConflict是单条保存的版本冲突信号,façade据此决定是否重试;
//    重试耗尽后对外转换为ErrConflict

var (
	// ErrStockNotFound 库存记录不存在(decrease/reserve/commit/release要求记录已存在)
	ErrStockNotFound = apperrors.ErrStockNotFound

	// ErrInvalidQuantity 流转数量必须为正整数
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "库存流转数量必须大于0")

	// ErrUnknownOp 未知的流转操作类型
	ErrUnknownOp = apperrors.New(apperrors.ErrCodeInvalidParams, "未知的库存流转操作")

	// ErrVersionConflict 乐观锁版本冲突(单次保存失败,可重试)
	// 注意:这是内部信号,重试耗尽后才对外返回ErrConflict
	ErrVersionConflict = apperrors.New(apperrors.ErrCodeConflict, "库存记录版本冲突")

	// 不变式校验错误(正常流转不会触发,出现即说明存在bug或脏数据)
	ErrInvalidVariantID          = apperrors.New(apperrors.ErrCodeInvalidParams, "规格ID不能为空")
	ErrNegativeAvailable         = apperrors.New(apperrors.ErrCodeBusinessError, "库存数量不能为负数")
	ErrNegativeAllocated         = apperrors.New(apperrors.ErrCodeBusinessError, "预占数量不能为负数")
	ErrAllocatedExceedsAvailable = apperrors.New(apperrors.ErrCodeBusinessError, "预占数量不能超过库存数量")
)

// NewOutOfStockError 可售库存不足(扣减场景)
func NewOutOfStockError(sellable, requested int) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeOutOfStock,
		"可售库存不足。可售: %d, 请求: %d", sellable, requested)
}

// NewReserveOutOfStockError 可售库存不足(预占场景)
func NewReserveOutOfStockError(sellable, requested int) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeOutOfStock,
		"可售库存不足,无法预占。可售: %d, 请求: %d", sellable, requested)
}

// NewCommitExceedsAllocatedError 提交数量超过已预占数量
func NewCommitExceedsAllocatedError(allocated, requested int) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInvalidTransition,
		"提交数量不能超过已预占数量。已预占: %d, 请求: %d", allocated, requested)
}

// NewReleaseExceedsAllocatedError 释放数量超过已预占数量
func NewReleaseExceedsAllocatedError(allocated, requested int) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInvalidTransition,
		"释放数量不能超过已预占数量。已预占: %d, 请求: %d", allocated, requested)
}

// IsOutOfStock 判断是否为库存不足错误
func IsOutOfStock(err error) bool {
	return apperrors.Code(err) == apperrors.ErrCodeOutOfStock
}

// IsInvalidTransition 判断是否为非法流转错误(超额提交/释放)
func IsInvalidTransition(err error) bool {
	return apperrors.Code(err) == apperrors.ErrCodeInvalidTransition
}

// IsVersionConflict 判断是否为版本冲突(重试判定条件)
func IsVersionConflict(err error) bool {
	return apperrors.Code(err) == apperrors.ErrCodeConflict
}
