package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 创建带格式化消息的AppError
// 用途：错误消息中包含动态数值（如库存不足时的可售数量与请求数量）
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeMQError       = 50003 // 消息队列错误

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized  = 40100 // 未认证
	ErrCodeInvalidToken  = 40101 // Token无效
	ErrCodeTokenExpired  = 40102 // Token过期
	ErrCodeInvalidAPIKey = 40103 // API密钥错误

	// 资源错误（40400-40499）
	ErrCodeNotFound        = 40400 // 资源不存在(通用)
	ErrCodeItemNotFound    = 40401 // 商品不存在
	ErrCodeVariantNotFound = 40402 // 规格不存在
	ErrCodeStockNotFound   = 40403 // 库存记录不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError        = 40000 // 业务错误(通用)
	ErrCodeOutOfStock           = 40001 // 可售库存不足
	ErrCodeInvalidTransition    = 40002 // 非法库存流转(超出已分配量)
	ErrCodeSKUDuplicate         = 40003 // SKU已存在
	ErrCodeDescriptionDuplicate = 40004 // 商品描述已存在
	ErrCodeDuplicateEntry       = 40009 // 重复记录(通用)

	// 参数错误（40900-40919）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败

	// 并发控制错误（40920-40929）
	ErrCodeConflict = 40920 // 乐观锁冲突重试耗尽(可由调用方重试)
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")
	ErrMQError       = New(ErrCodeMQError, "消息队列错误")

	// 认证授权
	ErrUnauthorized  = New(ErrCodeUnauthorized, "请先获取访问凭证")
	ErrInvalidToken  = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired  = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidAPIKey = New(ErrCodeInvalidAPIKey, "API密钥错误")

	// 资源不存在
	ErrItemNotFound    = New(ErrCodeItemNotFound, "商品不存在")
	ErrVariantNotFound = New(ErrCodeVariantNotFound, "商品规格不存在")
	ErrStockNotFound   = New(ErrCodeStockNotFound, "库存记录不存在")

	// 业务规则
	ErrSKUDuplicate         = New(ErrCodeSKUDuplicate, "SKU已存在")
	ErrDescriptionDuplicate = New(ErrCodeDescriptionDuplicate, "商品描述已存在")

	// 并发冲突
	ErrConflict = New(ErrCodeConflict, "并发冲突，请稍后重试")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// Code 提取错误码（非AppError返回ErrCodeInternal，nil返回0）
// 用途：按错误类别分支（中间件统计、测试断言），避免到处errors.As
func Code(err error) int {
	if err == nil {
		return 0
	}
	return GetAppError(err).Code
}
