package middleware

import (
	"strconv"
	"time"

	"github.com/marco0212/wedding-tracker/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request duration per route template. The registered route
// pattern (e.g. /schedules/:id) is used as the path label to keep
// cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
