package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"augeo-server/services/admin-api/internal/infrastructure/metrics"
)

// Metrics records per-request counters and latency, labelled by route
// template rather than raw path to keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordRequest(c.Request.Method, endpoint, status, time.Since(start).Seconds())
	}
}
