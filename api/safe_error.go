package api

import (
	"errors"

	"fintrack/config"
	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// respondStoreError 将存储层错误映射为 HTTP 响应
func respondStoreError(c *gin.Context, err error, fallback string) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		BadRequest(c, verr.Error())
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, "记录不存在")
	default:
		_ = c.Error(err)
		InternalError(c, SafeErrorMessage(err, fallback))
	}
}
