package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/baseline-api/pkg/metrics"
)

// Metrics records a counter and latency observation per matched route.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
