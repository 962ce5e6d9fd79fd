package middleware

import (
	"strconv"
	"time"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency per route template, so
// /api/schemas/:id is one series regardless of the id.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
