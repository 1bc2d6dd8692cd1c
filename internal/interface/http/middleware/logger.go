package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/checkproof/inventory/pkg/tracing"
)

// 请求ID的Header与Context Key
const (
	HeaderRequestID     = "X-Request-ID"
	contextKeyRequestID = "request_id"
)

// Logger 请求日志中间件
// 设计说明：
// 1. 每个请求生成(或透传)一个RequestID,写回响应Header便于排障串联
// 2. 记录方法、路径、状态、耗时、调用方、TraceID
// 3. 慢请求(>1s)升级为Warn
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// 透传上游RequestID,没有则生成
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(contextKeyRequestID, requestID)
		c.Writer.Header().Set(HeaderRequestID, requestID)

		c.Next()

		latency := time.Since(start)
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if client := GetClient(c); client != "" {
			fields = append(fields, zap.String("client", client))
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}

		switch {
		case len(c.Errors) > 0:
			fields = append(fields, zap.String("errors", c.Errors.String()))
			logger.Error("HTTP请求", fields...)
		case latency > time.Second:
			logger.Warn("HTTP慢请求", fields...)
		default:
			logger.Info("HTTP请求", fields...)
		}
	}
}

// GetRequestID 从Context获取请求ID
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(contextKeyRequestID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
