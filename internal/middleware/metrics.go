package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sathvik2377/timetable-api/internal/service"
)

// Metrics returns middleware that records request counts and latency per
// route template. The scrape endpoint itself is not observed.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()
		// Prefer the route template so /sessions/:id does not fan out into
		// one series per session.
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, status, duration)
	}
}
