package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/checkproof/inventory/pkg/errors"
)

// parseIDParam 解析路径中的数字ID参数
// 非法ID(非数字、0)返回错误,由调用方转成参数错误响应
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.Newf(apperrors.ErrCodeInvalidParams, "无效的%s", name)
	}
	return uint(id), nil
}
