package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/checkproof/inventory/pkg/metrics"
)

// Metrics HTTP指标中间件
// 设计说明：
// 1. path使用路由模板(/api/v1/items/:id)而不是真实URL,避免高基数标签
// 2. 统计请求数、耗时分布、并发数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestsInProgress.Inc()

		c.Next()

		metrics.HTTPRequestsInProgress.Dec()

		// 未匹配路由时FullPath为空,归类到not_found避免基数爆炸
		path := c.FullPath()
		if path == "" {
			path = "not_found"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
