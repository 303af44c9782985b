package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"inventra/backend/pkg/metrics"
)

// Metrics 按路由模板记录请求数与耗时，未匹配路由归入 unmatched
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		metrics.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
